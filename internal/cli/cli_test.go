package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamventure/itinmd/internal/itinerary"
	"github.com/teamventure/itinmd/internal/model"
)

const doc = `# 行程安排
> 版本: v1

## Day 1（2024-05-01）
- 09:00 - 10:00 | 早餐 | 酒店 |
- 10:30 - | 西湖 | 断桥 | 带伞
`

type exitCode int

// resetFlags puts every flag back to its default; cobra keeps values between Execute calls.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// run executes the CLI and returns stdout and the exit status.
func run(t *testing.T, stdin string, args ...string) (out string, code int) {
	t.Helper()
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("ITINMD_DB", "")

	resetFlags(RootCmd)
	prev := osExit
	osExit = func(c int) { panic(exitCode(c)) }
	defer func() { osExit = prev }()

	var buf bytes.Buffer
	RootCmd.SetOut(&buf)
	RootCmd.SetIn(strings.NewReader(stdin))
	RootCmd.SetArgs(args)

	defer func() {
		if r := recover(); r != nil {
			c, ok := r.(exitCode)
			if !ok {
				panic(r)
			}
			out, code = buf.String(), int(c)
		}
	}()
	require.NoError(t, RootCmd.Execute())
	return buf.String(), 0
}

func TestSerializeCommand(t *testing.T) {
	it := model.Itinerary{Days: []model.Day{{Day: 1, Date: "2024-05-01", Items: []model.Activity{
		{TimeStart: "09:00", TimeEnd: "10:00", Activity: "早餐", Location: "酒店"},
	}}}}
	in, err := json.Marshal(it)
	require.NoError(t, err)

	out, code := run(t, string(in), "serialize", "--version", "4")
	assert.Equal(t, 0, code)
	assert.Equal(t, itinerary.Serialize(it, 4), out)

	yamlIn := "days:\n  - day: 1\n    date: \"2024-05-01\"\n    items:\n      - time_start: \"09:00\"\n        time_end: \"10:00\"\n        activity: 早餐\n        location: 酒店\n"
	out, code = run(t, yamlIn, "serialize", "--format", "yaml", "--version", "4")
	assert.Equal(t, 0, code)
	assert.Equal(t, itinerary.Serialize(it, 4), out)
}

func TestParseCommand(t *testing.T) {
	out, code := run(t, doc, "parse")
	require.Equal(t, 0, code)

	var got parseOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Empty(t, got.Errors)
	require.Len(t, got.Itinerary.Days, 1)
	assert.Len(t, got.Itinerary.Days[0].Items, 2)
}

func TestValidateCommand(t *testing.T) {
	out, code := run(t, doc, "validate")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, `"valid": true`)

	pasted := "好的，行程如下：\n" + doc + "祝您旅途愉快！\n"
	out, code = run(t, pasted, "validate")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, `"valid": false`)

	out, code = run(t, pasted, "validate", "--sanitize")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, `"valid": true`)
}

func TestSanitizeCommand(t *testing.T) {
	out, code := run(t, "好的\n## Day 1\n-  09:00 - 10:00 | 早餐 |\n谢谢\n", "sanitize")
	assert.Equal(t, 0, code)
	assert.Equal(t, itinerary.SanitizeLines("好的\n## Day 1\n-  09:00 - 10:00 | 早餐 |\n谢谢\n")+"\n", out)

	out, code = run(t, "> 版本: v3\n## Day 2（2024-05-02）\n- - | 待定 |\n", "sanitize", "--draft")
	assert.Equal(t, 0, code)
	assert.Equal(t, "## Day 2\n", out)

	html := "<html><body><nav>菜单</nav><main><h2>Day 1</h2><ul><li>09:00 - 10:00 | 早餐 | 酒店 |</li></ul></main></body></html>"
	out, code = run(t, html, "sanitize", "--html")
	assert.Equal(t, 0, code)
	assert.NotContains(t, out, "菜单")
	assert.True(t, itinerary.Validate(out).Valid, out)
}

func TestTemplateAndEnforceCommands(t *testing.T) {
	out, code := run(t, "上午去西湖。下午去灵隐寺。晚上吃饭。", "template", "--version", "5")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "> 版本: v5")
	assert.True(t, itinerary.Validate(out).Valid)

	out, code = run(t, "随便写点什么", "enforce")
	assert.Equal(t, 0, code)
	var res itinerary.EnforceResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.FallbackUsed)
	assert.True(t, res.Check.Valid)
}

func TestRenderCommand(t *testing.T) {
	out, code := run(t, doc, "render", "--format", "json", "--title", "杭州")
	require.Equal(t, 0, code)
	assert.Contains(t, out, `"title": "杭州"`)

	path := filepath.Join(t.TempDir(), "plan")
	out, code = run(t, doc, "render", "--format", "pdf", "-o", path)
	require.Equal(t, 0, code)
	assert.Contains(t, out, `plan.pdf`)
	assert.FileExists(t, path+".pdf")
}

func TestPlanCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "test.db")

	out, code := run(t, doc, "--db", db, "commit", "--plan", "trip")
	require.Equal(t, 0, code)
	var plan model.Plan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Equal(t, 1, plan.Version)

	_, code = run(t, doc, "--db", db, "commit", "--plan", "trip", "--base-version", "1")
	require.Equal(t, 0, code)

	// v1 is stale now.
	_, code = run(t, doc, "--db", db, "commit", "--plan", "trip", "--base-version", "1")
	assert.Equal(t, 1, code)

	_, code = run(t, "没有行程", "--db", db, "commit", "--plan", "trip")
	assert.Equal(t, 1, code)

	out, code = run(t, "", "--db", db, "get", "--plan", "trip", "--markdown")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "> 版本: v2")

	out, code = run(t, "", "--db", db, "list", "--ids-only")
	require.Equal(t, 0, code)
	assert.Equal(t, "trip\tv2\n", out)

	out, code = run(t, "", "--db", db, "search", "西湖")
	require.Equal(t, 0, code)
	assert.Contains(t, out, `"plan_id": "trip"`)

	out, code = run(t, "draft text", "--db", db, "draft", "save", "--plan", "trip", "--base-version", "2")
	require.Equal(t, 0, code)
	out, code = run(t, "", "--db", db, "draft", "get", "--plan", "trip", "--markdown")
	require.Equal(t, 0, code)
	assert.Equal(t, "draft text", out)

	_, code = run(t, "", "--db", db, "rm", "--plan", "trip", "--all-versions")
	require.Equal(t, 0, code)
	_, code = run(t, "", "--db", db, "get", "--plan", "trip")
	assert.Equal(t, 1, code)
}

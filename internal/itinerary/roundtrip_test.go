package itinerary

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/teamventure/itinmd/internal/model"
)

var words = []string{
	"西湖", "灵隐寺", "早餐", "酒店 check-in", "a", "b c", "9:00", "#tag", "> quote",
	"Day 1", "（备注）", "- dash", "* star", "河坊街：小吃", "x~y", "集合 / 出发",
}

func randomText(r *rand.Rand, allowEmpty bool) string {
	if allowEmpty && r.Intn(3) == 0 {
		return ""
	}
	n := 1 + r.Intn(3)
	parts := make([]string, n)
	for i := range parts {
		parts[i] = words[r.Intn(len(words))]
	}
	return strings.Join(parts, " ")
}

func randomTime(r *rand.Rand) string {
	if r.Intn(2) == 0 {
		return fmt.Sprintf("%d:%02d", r.Intn(10), r.Intn(60))
	}
	return fmt.Sprintf("%02d:%02d", r.Intn(24), r.Intn(60))
}

func randomItinerary(r *rand.Rand) model.Itinerary {
	days := make([]model.Day, 1+r.Intn(4))
	for d := range days {
		items := make([]model.Activity, 1+r.Intn(5))
		for i := range items {
			items[i] = model.Activity{
				TimeStart: randomTime(r),
				Activity:  randomText(r, false),
				Location:  randomText(r, true),
				Note:      randomText(r, true),
			}
			if r.Intn(3) > 0 {
				items[i].TimeEnd = randomTime(r)
			}
		}
		days[d] = model.Day{Day: d + 1, Items: items}
		if r.Intn(2) == 0 {
			days[d].Date = fmt.Sprintf("2024-%02d-%02d", 1+r.Intn(12), 1+r.Intn(28))
		}
	}
	return model.Itinerary{Days: days}
}

func TestRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(20240101))
	for i := 0; i < 200; i++ {
		it := randomItinerary(r)
		md := Serialize(it, 1+r.Intn(9))

		res := Parse(md)
		if len(res.Issues) != 0 {
			t.Fatalf("case %d: unexpected issues %v\n%s", i, res.Errors(), md)
		}
		if diff := cmp.Diff(it, res.Itinerary, cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("case %d: round trip mismatch (-want +got):\n%s\n%s", i, diff, md)
		}
		if !Validate(md).Valid {
			t.Fatalf("case %d: serialized document does not validate:\n%s", i, md)
		}
	}
}

func TestRoundTripSerializeIsStable(t *testing.T) {
	md := Serialize(sampleItinerary(), 4)
	if again := Serialize(Parse(md).Itinerary, 4); again != md {
		t.Errorf("serialize(parse(md)) changed the document:\n%s\nvs\n%s", md, again)
	}
}

package planning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"5:30 pm", 1050},
		{"5:30pm", 1050},
		{"5:30 PM", 1050},
		{"12:00 am", 0},
		{"12:15 AM", 15},
		{"12:00 pm", 720},
		{"11:59 p.m.", 1439},
		{"(7:05 a.m.)", 425},
		{"Doors at 6:00 pm sharp", 1080},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseClock_Rejects(t *testing.T) {
	for _, in := range []string{"", "noon", "17:30", "13:00 pm", "5:75 pm", "5 pm", "115:30 pm"} {
		_, err := ParseClock(in)
		assert.ErrorIs(t, err, ErrUnparsableTime, "input %q", in)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "12:00 AM", FormatClock(0))
	assert.Equal(t, "12:00 PM", FormatClock(720))
	assert.Equal(t, "5:30 PM", FormatClock(1050))
	assert.Equal(t, "11:59 PM", FormatClock(1439))
	assert.Equal(t, "2:00 AM", FormatClock(1560))
	assert.Equal(t, "11:00 PM", FormatClock(-60))
}

func TestClockRoundTrip(t *testing.T) {
	for m := 0; m < MinutesPerDay; m++ {
		got, err := ParseClock(FormatClock(m))
		require.NoError(t, err)
		require.Equal(t, m, got, "label %s", FormatClock(m))
	}
}

func TestExtractTimeline(t *testing.T) {
	tl := ExtractTimeline(
		"5:30 pm - Cocktail hour begins",
		"1. 7:00 pm - Dinner service",
		"- 8:15 pm: Toasts",
		"#4 9:00 pm – 9:30 pm | First dance",
		"Guests are seated by 6:45 pm",
		"Florist arrives early, no fixed time",
	)

	assert.Equal(t, []string{"Cocktail hour begins"}, tl.At(1050))
	assert.Equal(t, []string{"Dinner service"}, tl.At(1140))
	assert.Equal(t, []string{"Toasts"}, tl.At(1215))
	assert.Equal(t, []string{"First dance"}, tl.At(1260))
	assert.Equal(t, []string{"First dance"}, tl.At(1290), "a value is listed under every time it mentions")
	assert.Equal(t, []string{"Guests are seated by 6:45 pm"}, tl.At(1125))
	assert.Len(t, tl, 6)
}

func TestExtractTimeline_StripsIndexAndDash(t *testing.T) {
	tests := []struct {
		in     string
		minute int
		want   string
	}{
		{"1 - Toasts at 8:15 pm", 1215, "Toasts at 8:15 pm"},
		{"2 – Cake cutting 9:00 pm", 1260, "Cake cutting 9:00 pm"},
		{"3) - Toasts 8:15 pm", 1215, "Toasts 8:15 pm"},
		{"4. — Coffee 10:30 pm", 1350, "Coffee 10:30 pm"},
		{"#3 - 10:00 pm to 11:00 pm | Dancing", 1320, "Dancing"},
		{"#3 - 10:00 pm to 11:00 pm | Dancing", 1380, "Dancing"},
		{"12-Speeches 8:00 pm", 1200, "Speeches 8:00 pm"},
		{"5:30 pm - Cocktails", 1050, "Cocktails"},
		{"10:15 pm Last call", 1335, "Last call"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			tl := ExtractTimeline(tt.in)
			assert.Equal(t, []string{tt.want}, tl.At(tt.minute))
		})
	}
}

func TestExtractTimeline_FallsBackToRawText(t *testing.T) {
	tl := ExtractTimeline("  10:00 pm  ")
	assert.Equal(t, []string{"10:00 pm"}, tl.At(1320))
}

func TestExtractTimeline_NoTimes(t *testing.T) {
	tl := ExtractTimeline("", "Vegetarian option for table 4", "Set at 17:00")
	assert.Empty(t, tl)
	assert.Empty(t, tl.Hints())
}

func TestExtractTimeline_SameMinuteCollects(t *testing.T) {
	tl := ExtractTimeline("6:00 pm - Doors open", "6:00 pm - Bar opens", "6:00 pm - Doors open")
	assert.Equal(t, []string{"Doors open", "Bar opens"}, tl.At(1080))
}

func TestTimelineHints_Ordered(t *testing.T) {
	tl := ExtractTimeline("9:00 pm - Cake", "6:00 pm - Doors", "7:30 pm - Dinner")
	hints := tl.Hints()
	require.Len(t, hints, 3)
	assert.Equal(t, TimelineHint{Minute: 1080, Description: "Doors"}, hints[0])
	assert.Equal(t, TimelineHint{Minute: 1170, Description: "Dinner"}, hints[1])
	assert.Equal(t, TimelineHint{Minute: 1260, Description: "Cake"}, hints[2])
}

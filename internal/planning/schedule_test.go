package planning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		in        string
		wantStart int
		wantEnd   int
	}{
		{"6:00 pm - 11:00 pm", 1080, 1380},
		{"10:00 pm - 2:00 am", 1320, 1560},
		{"6:00pm-11:00pm", 1080, 1380},
		{"11:30 am – 3:00 pm", 690, 900},
		{"8:00 pm - 8:00 pm", 1200, 2640},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			start, end, err := ParseRange(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
			assert.Greater(t, end, start)
		})
	}
}

func TestParseRange_Invalid(t *testing.T) {
	for _, in := range []string{"", "all evening", "6:00 pm", "6:00 pm - late", "soon - 9:00 pm"} {
		_, _, err := ParseRange(in)
		assert.ErrorIs(t, err, ErrUnparsableTime, "input %q", in)
	}
}

func TestClampStep(t *testing.T) {
	assert.Equal(t, 1, ClampStep(0))
	assert.Equal(t, 1, ClampStep(-15))
	assert.Equal(t, 15, ClampStep(15))
	assert.Equal(t, 60, ClampStep(90))
}

func TestBuildGrid_Completeness(t *testing.T) {
	tests := []struct {
		start, end, step int
	}{
		{1080, 1380, 30},
		{1080, 1380, 7},
		{1320, 1560, 15},
		{0, 1439, 60},
		{600, 600, 5},
		{600, 601, 60},
	}

	for _, tt := range tests {
		slots := BuildGrid(tt.start, tt.end, tt.step, nil)
		step := ClampStep(tt.step)

		require.Len(t, slots, (tt.end-tt.start)/step+1)
		assert.Equal(t, tt.start, slots[0].Minute)
		assert.LessOrEqual(t, slots[len(slots)-1].Minute, tt.end)
		for i := 1; i < len(slots); i++ {
			assert.Equal(t, step, slots[i].Minute-slots[i-1].Minute)
		}
	}
}

func TestBuildGrid_CrossMidnight(t *testing.T) {
	start, end, err := ParseRange("10:00 pm - 2:00 am")
	require.NoError(t, err)

	tl := ExtractTimeline("10:00 pm - Doors", "1:00 am - Last call")
	slots := BuildGrid(start, end, 60, tl)

	require.Len(t, slots, 5)
	labels := []string{}
	for _, s := range slots {
		labels = append(labels, s.Label)
	}
	assert.Equal(t, []string{"10:00 PM", "11:00 PM", "12:00 AM", "1:00 AM", "2:00 AM"}, labels)
	assert.Equal(t, 1560, slots[4].Minute)

	assert.Equal(t, []string{"Doors"}, slots[0].Activities)
	assert.Equal(t, []string{"Last call"}, slots[3].Activities)
	assert.True(t, slots[3].Scheduled)
}

func TestBuildGrid_NoActivityMarker(t *testing.T) {
	tl := ExtractTimeline("6:30 pm - Salad course")
	slots := BuildGrid(1080, 1140, 30, tl)

	require.Len(t, slots, 3)
	assert.Equal(t, []string{NoScheduledActivity}, slots[0].Activities)
	assert.False(t, slots[0].Scheduled)
	assert.Equal(t, []string{"Salad course"}, slots[1].Activities)
	assert.Equal(t, []string{NoScheduledActivity}, slots[2].Activities)
	for _, s := range slots {
		assert.NotEmpty(t, s.Activities)
	}
}

func TestBuildGrid_OffStepHintIsNotPlaced(t *testing.T) {
	tl := ExtractTimeline("6:10 pm - Speech")
	for _, s := range BuildGrid(1080, 1140, 30, tl) {
		assert.False(t, s.Scheduled)
	}
}

func TestBuildGrid_EndBeforeStartWraps(t *testing.T) {
	slots := BuildGrid(1380, 60, 30, nil)
	require.Len(t, slots, 5)
	assert.Equal(t, 1500, slots[4].Minute)
	assert.Equal(t, "1:00 AM", slots[4].Label)
}

package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseReviewState(t *testing.T) {
	t.Parallel()

	for _, state := range ReviewStates() {
		got, err := ParseReviewState(string(state))
		require.NoError(t, err)
		require.Equal(t, state, got)
	}

	for _, bad := range []string{"", "published", "ARCHIVED", " PUBLISHED"} {
		_, err := ParseReviewState(bad)
		require.ErrorIs(t, err, ErrUnknownReviewState, bad)
	}
}

func TestReviewStatesIsACopy(t *testing.T) {
	t.Parallel()

	states := ReviewStates()
	states[0] = "MUTATED"

	require.Equal(t, ReviewStateSubmitted, ReviewStates()[0])
}

func TestReviewStateScan(t *testing.T) {
	t.Parallel()

	var s ReviewState
	require.NoError(t, s.Scan("TREATED"))
	require.Equal(t, ReviewStateTreated, s)

	require.NoError(t, s.Scan([]byte("REJECTED")))
	require.Equal(t, ReviewStateRejected, s)

	// Unknown tokens read back from storage are an integrity error, never a
	// silent default.
	require.ErrorIs(t, s.Scan("ARCHIVED"), ErrUnknownReviewState)
	require.ErrorIs(t, s.Scan(nil), ErrUnknownReviewState)
	require.Error(t, s.Scan(42))
	require.Equal(t, ReviewStateRejected, s)
}

func TestReviewStateValue(t *testing.T) {
	t.Parallel()

	v, err := ReviewStatePublished.Value()
	require.NoError(t, err)
	require.Equal(t, "PUBLISHED", v)

	_, err = ReviewState("nope").Value()
	require.ErrorIs(t, err, ErrUnknownReviewState)
}

func TestCalendarDateUsesUTC(t *testing.T) {
	t.Parallel()

	// 23:30 in UTC-05:00 is already the next day in UTC.
	loc := time.FixedZone("UTC-5", -5*60*60)
	ts := time.Date(2024, 3, 9, 23, 30, 0, 0, loc)

	require.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), CalendarDate(ts))

	r := Review{SubmittedAt: ts}
	require.Equal(t, CalendarDate(ts), r.SubmittedOn())
}

func TestReviewHasResponse(t *testing.T) {
	t.Parallel()

	var r Review
	require.False(t, r.HasResponse())

	text := "Thanks!"
	now := time.Now()
	r.ResponseText = &text
	r.ResponseAt = &now
	require.True(t, r.HasResponse())
}

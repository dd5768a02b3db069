package notes

import (
	"math"
	"testing"
	"time"

	kerrors "github.com/PolarWolf314/theca/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tickingClock returns a clock that advances one minute per call.
func tickingClock(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func newTestProfile() *Profile {
	p := NewProfile("test", false)
	p.SetClock(tickingClock(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)))
	return p
}

func ids(list []Note) []uint64 {
	out := make([]uint64, 0, len(list))
	for _, n := range list {
		out = append(out, n.ID)
	}
	return out
}

func TestAdd_AllocatesSequentialIDs(t *testing.T) {
	p := newTestProfile()

	for want := uint64(1); want <= 3; want++ {
		id, err := p.Add("note", "", StatusNone)
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}
	assert.Equal(t, uint64(3), p.LastID)
}

func TestAdd_IDsNeverReused(t *testing.T) {
	p := newTestProfile()

	first, err := p.Add("first", "", StatusNone)
	require.NoError(t, err)

	deleted, notFound := p.Delete(first)
	assert.Equal(t, []uint64{first}, deleted)
	assert.Empty(t, notFound)

	second, err := p.Add("second", "", StatusNone)
	require.NoError(t, err)
	assert.Greater(t, second, first)

	p.Clear()
	third, err := p.Add("third", "", StatusNone)
	require.NoError(t, err)
	assert.Greater(t, third, second)
}

func TestAdd_RespectsLoadedNotesAboveLastID(t *testing.T) {
	p := newTestProfile()
	p.Notes = []Note{{ID: 7, Title: "loaded"}}

	id, err := p.Add("next", "", StatusNone)
	require.NoError(t, err)
	assert.Equal(t, uint64(8), id)
}

func TestAdd_IDsExhausted(t *testing.T) {
	p := newTestProfile()
	p.LastID = math.MaxUint64 - 1

	id, err := p.Add("last one", "", StatusNone)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), id)

	_, err = p.Add("one too many", "", StatusNone)
	assert.ErrorIs(t, err, kerrors.ErrIDsExhausted)
	assert.Equal(t, 1, p.Len())

	p = newTestProfile()
	p.Notes = []Note{{ID: math.MaxUint64, Title: "loaded"}}
	_, err = p.Insert(Note{Title: "copied"})
	assert.ErrorIs(t, err, kerrors.ErrIDsExhausted)
}

func TestAdd_Validation(t *testing.T) {
	p := newTestProfile()

	_, err := p.Add("", "body", StatusNone)
	assert.ErrorIs(t, err, kerrors.ErrEmptyTitle)

	_, err = p.Add("\n \n", "body", StatusNone)
	assert.ErrorIs(t, err, kerrors.ErrEmptyTitle)

	_, err = p.Add("ok", "", Status(9))
	assert.ErrorIs(t, err, kerrors.ErrInvalidStatus)

	assert.Empty(t, p.Notes)
	assert.Zero(t, p.LastID)
}

func TestAdd_FoldsNewlinesInTitle(t *testing.T) {
	p := newTestProfile()

	id, err := p.Add("two\nlines", "body\nkeeps\nnewlines", StatusUrgent)
	require.NoError(t, err)

	n, err := p.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "two lines", n.Title)
	assert.Equal(t, "body\nkeeps\nnewlines", n.Body)
	assert.Equal(t, StatusUrgent, n.Status)
	assert.False(t, n.LastTouched.IsZero())
}

func TestEdit_PartialUpdate(t *testing.T) {
	p := newTestProfile()
	id, _ := p.Add("title", "body", StatusNone)
	before, _ := p.Get(id)

	started := StatusStarted
	require.NoError(t, p.Edit(id, EditFields{Status: &started}))

	after, _ := p.Get(id)
	assert.Equal(t, "title", after.Title)
	assert.Equal(t, "body", after.Body)
	assert.Equal(t, StatusStarted, after.Status)
	assert.True(t, after.LastTouched.After(before.LastTouched))

	newBody := ""
	require.NoError(t, p.Edit(id, EditFields{Body: &newBody}))
	after, _ = p.Get(id)
	assert.Equal(t, "", after.Body)
	assert.Equal(t, StatusStarted, after.Status)
}

func TestEdit_Errors(t *testing.T) {
	p := newTestProfile()
	id, _ := p.Add("title", "body", StatusNone)

	title := "x"
	assert.ErrorIs(t, p.Edit(99, EditFields{Title: &title}), kerrors.ErrNoteNotFound)
	assert.ErrorIs(t, p.Edit(99, EditFields{Title: &title}), kerrors.ErrNotFound)

	empty := ""
	assert.ErrorIs(t, p.Edit(id, EditFields{Title: &empty}), kerrors.ErrEmptyTitle)

	n, _ := p.Get(id)
	assert.Equal(t, "title", n.Title)
}

func TestEdit_NoFieldsLeavesTimestamp(t *testing.T) {
	p := newTestProfile()
	id, _ := p.Add("title", "", StatusNone)
	before, _ := p.Get(id)

	require.NoError(t, p.Edit(id, EditFields{}))

	after, _ := p.Get(id)
	assert.Equal(t, before, after)
}

func TestDelete_Batch(t *testing.T) {
	p := newTestProfile()
	for _, title := range []string{"a", "b", "c"} {
		_, _ = p.Add(title, "", StatusNone)
	}

	deleted, notFound := p.Delete(3, 42, 1, 3)
	assert.Equal(t, []uint64{3, 1}, deleted)
	assert.Equal(t, []uint64{42}, notFound)
	assert.Equal(t, []uint64{2}, ids(p.Notes))
}

func TestClear_KeepsLastID(t *testing.T) {
	p := newTestProfile()
	_, _ = p.Add("a", "", StatusNone)
	_, _ = p.Add("b", "", StatusNone)

	assert.Equal(t, 2, p.Clear())
	assert.Zero(t, p.Len())
	assert.Equal(t, uint64(2), p.LastID)
}

func TestGet_NotFound(t *testing.T) {
	p := newTestProfile()
	_, err := p.Get(1)
	assert.ErrorIs(t, err, kerrors.ErrNoteNotFound)
}

func TestInsert_FreshIDKeepsContent(t *testing.T) {
	p := newTestProfile()
	_, _ = p.Add("existing", "", StatusNone)

	src := Note{ID: 1, Title: "moved", Body: "text", Status: StatusUrgent, LastTouched: time.Unix(0, 0)}
	id, err := p.Insert(src)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), id)

	n, _ := p.Get(id)
	assert.Equal(t, "moved", n.Title)
	assert.Equal(t, "text", n.Body)
	assert.Equal(t, StatusUrgent, n.Status)
	assert.True(t, n.LastTouched.After(src.LastTouched))
}

func TestList_Ordering(t *testing.T) {
	p := newTestProfile()
	for _, title := range []string{"one", "two", "three"} {
		_, _ = p.Add(title, "", StatusNone)
	}

	got := p.List(ListOptions{SortByDate: true, Reverse: true, Limit: 2})
	assert.Equal(t, []uint64{3, 2}, ids(got))

	assert.Equal(t, []uint64{1, 2, 3}, ids(p.List(ListOptions{})))
	assert.Equal(t, []uint64{3, 2, 1}, ids(p.List(ListOptions{Reverse: true})))
	assert.Equal(t, []uint64{1}, ids(p.List(ListOptions{Limit: 1})))
}

func TestList_DateSortDiffersFromIDOrder(t *testing.T) {
	p := newTestProfile()
	for _, title := range []string{"one", "two", "three"} {
		_, _ = p.Add(title, "", StatusNone)
	}
	body := "touched"
	require.NoError(t, p.Edit(1, EditFields{Body: &body}))

	assert.Equal(t, []uint64{2, 3, 1}, ids(p.List(ListOptions{SortByDate: true})))
	assert.Equal(t, []uint64{1, 2, 3}, ids(p.List(ListOptions{})))
}

func TestList_StatusFilterBeforeLimit(t *testing.T) {
	p := newTestProfile()
	_, _ = p.Add("a", "", StatusNone)
	_, _ = p.Add("b", "", StatusUrgent)
	_, _ = p.Add("c", "", StatusNone)
	_, _ = p.Add("d", "", StatusUrgent)

	urgent := StatusUrgent
	got := p.List(ListOptions{Status: &urgent, Limit: 1})
	assert.Equal(t, []uint64{2}, ids(got))
}

func TestList_DoesNotMutateProfile(t *testing.T) {
	p := newTestProfile()
	_, _ = p.Add("a", "", StatusNone)
	_, _ = p.Add("b", "", StatusNone)

	_ = p.List(ListOptions{Reverse: true})
	assert.Equal(t, []uint64{1, 2}, ids(p.Notes))
}

func TestSearch(t *testing.T) {
	p := newTestProfile()
	_, _ = p.Add("foo bar", "nothing here", StatusNone)
	_, _ = p.Add("baz", "contains foo", StatusStarted)

	got, err := p.Search(SearchOptions{Pattern: "foo"})
	require.NoError(t, err)
	assert.Equal(t, []uint64{1}, ids(got))

	got, err = p.Search(SearchOptions{Pattern: "f.*", Regex: true})
	require.NoError(t, err)
	assert.Equal(t, []uint64{1}, ids(got))

	_, err = p.Search(SearchOptions{Pattern: "(", Regex: true})
	assert.ErrorIs(t, err, kerrors.ErrInvalidPattern)
}

func TestSearch_Modes(t *testing.T) {
	p := newTestProfile()
	_, _ = p.Add("Foo bar", "nothing here", StatusNone)
	_, _ = p.Add("baz", "contains foo", StatusStarted)

	got, _ := p.Search(SearchOptions{Pattern: "foo"})
	assert.Empty(t, got, "plain search is case-sensitive")

	got, _ = p.Search(SearchOptions{Pattern: "foo", IgnoreCase: true})
	assert.Equal(t, []uint64{1}, ids(got))

	got, _ = p.Search(SearchOptions{Pattern: "^FOO", Regex: true, IgnoreCase: true})
	assert.Equal(t, []uint64{1}, ids(got))

	got, _ = p.Search(SearchOptions{Pattern: "foo", InBody: true})
	assert.Equal(t, []uint64{2}, ids(got))

	none := StatusNone
	got, _ = p.Search(SearchOptions{Pattern: "foo", InBody: true, ListOptions: ListOptions{Status: &none}})
	assert.Empty(t, got)
}

func TestStats(t *testing.T) {
	p := newTestProfile()
	assert.Nil(t, p.Stats().Oldest)

	_, _ = p.Add("a", "", StatusNone)
	_, _ = p.Add("b", "", StatusUrgent)
	_, _ = p.Add("c", "", StatusUrgent)

	s := p.Stats()
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.ByStatus[StatusNone])
	assert.Equal(t, 0, s.ByStatus[StatusStarted])
	assert.Equal(t, 2, s.ByStatus[StatusUrgent])
	require.NotNil(t, s.Oldest)
	require.NotNil(t, s.Newest)
	assert.Equal(t, uint64(1), s.Oldest.ID)
	assert.Equal(t, uint64(3), s.Newest.ID)
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("Started")
	require.NoError(t, err)
	assert.Equal(t, StatusStarted, st)

	_, err = ParseStatus("started")
	assert.ErrorIs(t, err, kerrors.ErrInvalidStatus)

	_, err = ParseStatus("Blank")
	assert.ErrorIs(t, err, kerrors.ErrInvalidStatus)

	st, err = ParseStatusFlag("URGENT")
	require.NoError(t, err)
	assert.Equal(t, StatusUrgent, st)

	st, err = ParseStatusFlag("")
	require.NoError(t, err)
	assert.Equal(t, StatusNone, st)
}

package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]string{
		"pending":     "pending",
		"Belum":       "pending",
		"ON PROGRESS": "on-progress",
		"proses":      "on-progress",
		"in progress": "on-progress",
		"Selesai":     "done",
		"DONE":        "done",
		"completed":   "done",
		"":            "pending",
		"???":         "pending",
	}

	for raw, want := range cases {
		if got := NormalizeStatus(raw); got != want {
			t.Errorf("NormalizeStatus(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestBuildWorkload(t *testing.T) {
	st := newFakeStore()
	resolver := NewUserResolver(st, testLogger())
	fm := NewFieldMapper([]string{"Nama Pekerjaan", "Jenis", "Status", "Tanggal Diterima", "Fungsi", "PIC"})

	row := Row{Num: 2, Cells: map[string]string{
		"Nama Pekerjaan":   "Audit laporan keuangan",
		"Jenis":            "Audit",
		"Status":           "Selesai",
		"Tanggal Diterima": "17/08/2025",
		"Fungsi":           "Keuangan",
		"PIC":              "Budi Santoso",
	}}

	values, issues := buildWorkload(fm, row, 1, resolver)
	require.Empty(t, issues)

	assert.Equal(t, "Audit laporan keuangan", values["name"])
	assert.Equal(t, "Audit", values["type"])
	assert.Equal(t, "done", values["status"])
	assert.Equal(t, "2025-08-17", values["received_date"])
	assert.Equal(t, "Keuangan", values["fungsi"])
	assert.Equal(t, int64(1), values["user_id"])
}

func TestBuildWorkloadDefaults(t *testing.T) {
	st := newFakeStore()
	resolver := NewUserResolver(st, testLogger())
	fm := NewFieldMapper([]string{"Nama Pekerjaan", "Jenis", "Status", "Tanggal Diterima"})

	row := Row{Num: 5, Cells: map[string]string{
		"Nama Pekerjaan":   "",
		"Jenis":            "",
		"Status":           "entah",
		"Tanggal Diterima": "",
	}}

	values, issues := buildWorkload(fm, row, 3, resolver)
	require.Empty(t, issues)

	assert.Equal(t, "Task 3", values["name"])
	assert.Equal(t, "General", values["type"])
	assert.Equal(t, "pending", values["status"])
	assert.Nil(t, values["received_date"])
	assert.Nil(t, values["user_id"])
}

func TestBuildWorkloadUnparsableDate(t *testing.T) {
	st := newFakeStore()
	resolver := NewUserResolver(st, testLogger())
	fm := NewFieldMapper([]string{"Nama Pekerjaan", "Tanggal Diterima"})

	row := Row{Num: 4, Cells: map[string]string{
		"Nama Pekerjaan":   "Rekonsiliasi",
		"Tanggal Diterima": "kapan-kapan",
	}}

	values, issues := buildWorkload(fm, row, 1, resolver)

	// The record proceeds with a null date; the bad value becomes an issue.
	assert.Nil(t, values["received_date"])
	require.Len(t, issues, 1)
	assert.Equal(t, 4, issues[0].Row)
	assert.NotEmpty(t, issues[0].Error)
}

func TestBuildEventInvalidRangeSkips(t *testing.T) {
	st := newFakeStore()
	resolver := NewUserResolver(st, testLogger())
	fm := NewFieldMapper([]string{"Kegiatan", "Tanggal Mulai", "Tanggal Selesai", "Peserta"})

	row := Row{Num: 3, Cells: map[string]string{
		"Kegiatan":        "Rapat koordinasi",
		"Tanggal Mulai":   "",
		"Tanggal Selesai": "",
		"Peserta":         "Andi",
	}}

	values, issues, ok := buildEvent(fm, row, 1, resolver)

	assert.False(t, ok, "row without a usable range must be skipped")
	assert.Nil(t, values)
	require.Len(t, issues, 1)
	assert.Equal(t, 3, issues[0].Row)
	assert.NotEmpty(t, issues[0].Error)
	assert.NotNil(t, issues[0].RowData)
	assert.Equal(t, 0, st.creations, "skipped rows must not create users")
}

func TestBuildEventSwappedRange(t *testing.T) {
	st := newFakeStore()
	resolver := NewUserResolver(st, testLogger())
	fm := NewFieldMapper([]string{"Kegiatan", "Tanggal Mulai", "Tanggal Selesai", "Peserta", "DIPA"})

	row := Row{Num: 4, Cells: map[string]string{
		"Kegiatan":        "Perjalanan dinas",
		"Tanggal Mulai":   "10/03/2025",
		"Tanggal Selesai": "01/01/2025",
		"Peserta":         "Andi, Budi, , Andi",
		"DIPA":            "024.01.1.123456",
	}}

	values, issues, ok := buildEvent(fm, row, 1, resolver)
	require.True(t, ok, "swapped range is a repair, not a failure")

	assert.Equal(t, "2025-01-01", values["start_date"])
	assert.Equal(t, "2025-03-10", values["end_date"])
	assert.Equal(t, defaultEventColor, values["color"])
	assert.Equal(t, `["Andi","Budi"]`, values["participants"])
	assert.Equal(t, "024.01.1.123456", values["dipa_code"])

	// Creator falls back to the first participant.
	assert.Equal(t, int64(1), values["created_by"])
	assert.Equal(t, "Andi", st.users["Andi"].FullName)

	require.Len(t, issues, 1)
	assert.Equal(t, 4, issues[0].Row)
	assert.NotEmpty(t, issues[0].Note, "swap produces an informational issue")
	assert.Empty(t, issues[0].Error)
}

func TestBuildEventDefaults(t *testing.T) {
	st := newFakeStore()
	resolver := NewUserResolver(st, testLogger())
	fm := NewFieldMapper([]string{"Kegiatan", "Tanggal Mulai", "Tanggal Selesai"})

	row := Row{Num: 2, Cells: map[string]string{
		"Kegiatan":        "",
		"Tanggal Mulai":   "17/08/2025",
		"Tanggal Selesai": "",
	}}

	values, issues, ok := buildEvent(fm, row, 7, resolver)
	require.True(t, ok)
	require.Empty(t, issues, "mirrored single-day range is not an issue")

	assert.Equal(t, "Event 7", values["title"])
	assert.Equal(t, "2025-08-17", values["start_date"])
	assert.Equal(t, "2025-08-17", values["end_date"])
	assert.Nil(t, values["created_by"], "no creator and no participants leaves a null reference")
}

func TestSplitParticipants(t *testing.T) {
	got := splitParticipants("Andi, Budi , ,Citra,Andi")
	want := []string{"Andi", "Budi", "Citra"}

	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i], got[i])
	}

	assert.Nil(t, splitParticipants(""))
}

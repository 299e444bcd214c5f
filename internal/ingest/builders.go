package ingest

import (
	"encoding/json"
	"fmt"
	"strings"

	"workload-import-api/internal/models"
)

// defaultEventColor is the fixed color imported calendar events get; the
// dashboard only distinguishes manually created events.
const defaultEventColor = "#3788d8"

// Header aliases per logical field, ordered by how often each label shows
// up across known spreadsheet versions. Indonesian labels first.
var (
	workloadNameAliases     = []string{"nama pekerjaan", "pekerjaan", "uraian pekerjaan", "kegiatan", "task", "nama"}
	workloadTypeAliases     = []string{"jenis", "tipe", "kategori", "type", "category"}
	workloadDescAliases     = []string{"deskripsi", "keterangan", "description", "uraian"}
	workloadStatusAliases   = []string{"status"}
	workloadReceivedAliases = []string{"tanggal diterima", "tanggal masuk", "diterima", "received", "tanggal"}
	workloadFungsiAliases   = []string{"fungsi", "bidang", "unit", "function"}
	assigneeAliases         = []string{"pic", "nama pic", "penanggung jawab", "user", "assignee"}

	eventTitleAliases        = []string{"nama kegiatan", "judul", "agenda", "acara", "title", "kegiatan"}
	eventDescAliases         = []string{"deskripsi", "keterangan", "description"}
	eventLocationAliases     = []string{"lokasi", "tempat", "tujuan", "location"}
	eventStartAliases        = []string{"tanggal mulai", "tanggal awal", "mulai", "berangkat", "start"}
	eventEndAliases          = []string{"tanggal selesai", "tanggal akhir", "selesai", "kembali", "end"}
	eventParticipantsAliases = []string{"peserta", "yang berangkat", "participants", "pegawai"}
	eventCreatorAliases      = []string{"pembuat", "creator", "pic"}
	eventDipaAliases         = []string{"dipa", "kode anggaran", "anggaran", "budget"}

	userNameAliases     = []string{"nama lengkap", "nama", "full name", "name"}
	userNIPAliases      = []string{"nip"}
	userEmailAliases    = []string{"email", "e-mail"}
	userGolonganAliases = []string{"golongan", "pangkat", "rank"}
	userJabatanAliases  = []string{"jabatan", "posisi", "position"}
	userRoleAliases     = []string{"role", "peran"}
)

// statusSynonyms folds the English/Indonesian status spellings seen in the
// legacy exports onto the three canonical values. Unrecognized text falls
// back to "pending" rather than failing the row.
var statusSynonyms = map[string]string{
	"pending":           "pending",
	"belum":             "pending",
	"belum dikerjakan":  "pending",
	"menunggu":          "pending",
	"baru":              "pending",
	"new":               "pending",
	"todo":              "pending",
	"on-progress":       "on-progress",
	"on progress":       "on-progress",
	"onprogress":        "on-progress",
	"in progress":       "on-progress",
	"progress":          "on-progress",
	"proses":            "on-progress",
	"sedang dikerjakan": "on-progress",
	"dikerjakan":        "on-progress",
	"berjalan":          "on-progress",
	"ongoing":           "on-progress",
	"done":              "done",
	"selesai":           "done",
	"complete":          "done",
	"completed":         "done",
	"finish":            "done",
	"finished":          "done",
	"beres":             "done",
}

func NormalizeStatus(raw string) string {
	if status, ok := statusSynonyms[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return status
	}
	return "pending"
}

// buildWorkload maps one row to a workloads insert. It never rejects a row:
// an unparsable received date is reported as an issue and the record
// proceeds with a null date.
func buildWorkload(fm *FieldMapper, row Row, seq int, resolver *UserResolver) (map[string]interface{}, []models.ImportIssue) {
	var issues []models.ImportIssue

	name := fm.Value(row, workloadNameAliases...)
	if name == "" {
		name = fmt.Sprintf("Task %d", seq)
	}

	typ := fm.Value(row, workloadTypeAliases...)
	if typ == "" {
		typ = "General"
	}

	rawDate := fm.Value(row, workloadReceivedAliases...)
	date := NormalizeDate(rawDate)
	if rawDate != "" && date == "" {
		issues = append(issues, models.ImportIssue{
			Row:   row.Num,
			Title: name,
			Error: fmt.Sprintf("unparsable received date %q", rawDate),
		})
	}

	values := map[string]interface{}{
		"name":          name,
		"type":          typ,
		"description":   nullable(fm.Value(row, workloadDescAliases...)),
		"status":        NormalizeStatus(fm.Value(row, workloadStatusAliases...)),
		"received_date": nullable(date),
		"fungsi":        nullable(fm.Value(row, workloadFungsiAliases...)),
		"user_id":       nullableID(resolver.ResolveOrCreate(fm.Value(row, assigneeAliases...), nil)),
	}
	return values, issues
}

// buildEvent maps one row to a calendar_events insert. A row without a
// usable date range is skipped entirely (ok=false) with an issue; a swapped
// range is inserted and reported as an informational issue.
func buildEvent(fm *FieldMapper, row Row, seq int, resolver *UserResolver) (map[string]interface{}, []models.ImportIssue, bool) {
	var issues []models.ImportIssue

	title := fm.Value(row, eventTitleAliases...)
	if title == "" {
		title = fmt.Sprintf("Event %d", seq)
	}

	rawStart := fm.Value(row, eventStartAliases...)
	rawEnd := fm.Value(row, eventEndAliases...)

	rng := ValidateDateRange(rawStart, rawEnd)
	if !rng.Valid {
		issues = append(issues, models.ImportIssue{
			Row:      row.Num,
			Title:    title,
			RawStart: rawStart,
			RawEnd:   rawEnd,
			Error:    rng.Error,
			RowData:  row.Cells,
		})
		return nil, issues, false
	}
	if rng.Swapped {
		issues = append(issues, models.ImportIssue{
			Row:      row.Num,
			Title:    title,
			RawStart: rawStart,
			RawEnd:   rawEnd,
			Note:     "start and end dates were inverted; swapped",
		})
	}

	participants := splitParticipants(fm.Value(row, eventParticipantsAliases...))

	creator := fm.Value(row, eventCreatorAliases...)
	if creator == "" && len(participants) > 0 {
		creator = participants[0]
	}

	if participants == nil {
		participants = []string{}
	}
	participantsJSON, _ := json.Marshal(participants)

	values := map[string]interface{}{
		"title":        title,
		"description":  nullable(fm.Value(row, eventDescAliases...)),
		"location":     nullable(fm.Value(row, eventLocationAliases...)),
		"start_date":   rng.Start,
		"end_date":     rng.End,
		"color":        defaultEventColor,
		"created_by":   nullableID(resolver.ResolveOrCreate(creator, nil)),
		"participants": string(participantsJSON),
		"dipa_code":    nullable(fm.Value(row, eventDipaAliases...)),
	}
	return values, issues, true
}

// buildUserEntry passes one directory row through the resolver. Returns the
// resolved id (nil when the row has no name or creation failed).
func buildUserEntry(fm *FieldMapper, row Row, resolver *UserResolver) *int64 {
	name := fm.Value(row, userNameAliases...)
	attrs := &UserAttrs{
		NIP:      fm.Value(row, userNIPAliases...),
		Email:    fm.Value(row, userEmailAliases...),
		Golongan: fm.Value(row, userGolonganAliases...),
		Jabatan:  fm.Value(row, userJabatanAliases...),
		Role:     fm.Value(row, userRoleAliases...),
	}
	return resolver.ResolveOrCreate(name, attrs)
}

// splitParticipants turns a comma-separated cell into an ordered set of
// display names: trimmed, empties dropped, duplicates removed.
func splitParticipants(raw string) []string {
	if raw == "" {
		return nil
	}

	seen := make(map[string]bool)
	var participants []string
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		participants = append(participants, name)
	}
	return participants
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullableID(id *int64) interface{} {
	if id == nil {
		return nil
	}
	return *id
}

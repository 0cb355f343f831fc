package entities

import "sort"

// CommitStatRecord is the diffstat of one commit attributed to one author identity.
type CommitStatRecord struct {
	CommitHash   string `json:"commit"`
	AuthorName   string `json:"author"`
	AuthorEmail  string `json:"email"`
	FilesChanged int    `json:"files"`
	Insertions   int    `json:"insertions"`
	Deletions    int    `json:"deletions"`
}

// StatLog accumulates commit statistics across every module of a run.
type StatLog []CommitStatRecord

// Merge returns a new log holding the receiver's records followed by records.
func (l StatLog) Merge(records []CommitStatRecord) StatLog {
	merged := make(StatLog, 0, len(l)+len(records))
	merged = append(merged, l...)
	return append(merged, records...)
}

// AuthorSummary is the contribution total of one author.
type AuthorSummary struct {
	Author     string `json:"author"`
	Commits    int    `json:"commits"`
	Insertions int    `json:"insertions"`
	Deletions  int    `json:"deletions"`
	Files      int    `json:"files"`
	Lines      int    `json:"lines"`
}

// AggregateContributions groups records by author name and sorts the totals by
// changed lines, largest first. Authors with equal totals keep the order in which
// they first appear in records.
func AggregateContributions(records []CommitStatRecord) []AuthorSummary {
	index := make(map[string]int)
	summaries := make([]AuthorSummary, 0)

	for _, record := range records {
		i, ok := index[record.AuthorName]
		if !ok {
			i = len(summaries)
			index[record.AuthorName] = i
			summaries = append(summaries, AuthorSummary{Author: record.AuthorName})
		}
		summary := &summaries[i]
		summary.Commits++
		summary.Insertions += record.Insertions
		summary.Deletions += record.Deletions
		summary.Files += record.FilesChanged
	}

	for i := range summaries {
		summaries[i].Lines = summaries[i].Insertions + summaries[i].Deletions
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Lines > summaries[j].Lines
	})
	return summaries
}

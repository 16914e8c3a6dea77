package domain

// RecordKind names one of the seeded record kinds.
type RecordKind string

const (
	KindUser              RecordKind = "user"
	KindVillageQuestion   RecordKind = "village question"
	KindHumanQuizQuestion RecordKind = "human quiz question"
	KindBlogPost          RecordKind = "blog post"
)

// Outcome is the result of a single get-or-create.
type Outcome string

const (
	OutcomeCreated Outcome = "created"
	OutcomeExists  Outcome = "exists"
)

// SeedCount tallies the outcomes for one record kind.
type SeedCount struct {
	Created  int
	Existing int
}

func (c SeedCount) Total() int {
	return c.Created + c.Existing
}

// SeedReport summarises a seeding run.
type SeedReport struct {
	Counts map[RecordKind]SeedCount
}

func NewSeedReport() *SeedReport {
	return &SeedReport{Counts: make(map[RecordKind]SeedCount)}
}

func (r *SeedReport) Record(kind RecordKind, outcome Outcome) {
	c := r.Counts[kind]
	if outcome == OutcomeCreated {
		c.Created++
	} else {
		c.Existing++
	}
	r.Counts[kind] = c
}

// CreatedKinds returns the kinds that received at least one new record, in seeding order.
func (r *SeedReport) CreatedKinds() []RecordKind {
	var kinds []RecordKind
	for _, k := range []RecordKind{KindUser, KindVillageQuestion, KindHumanQuizQuestion, KindBlogPost} {
		if r.Counts[k].Created > 0 {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

package core

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrNotFoundFolder means no case folder scored above the acceptance
// threshold. Terminal for the item: the folder has to be created or
// corrected by a human, so the pipeline never retries it.
var ErrNotFoundFolder = errors.New("no matching case folder")

// minTokenLen mirrors the party index of the tracker: style tokens
// shorter than this are too common to be discriminating.
const minTokenLen = 3

// FolderResolver maps a case identity to a destination folder using a
// snapshot of the folder index. The snapshot is read-only for the
// duration of a run; a miss triggers fuzzy matching, never a write.
type FolderResolver struct {
	folders   []*CaseFolder
	byKey     map[string]*CaseFolder
	threshold float64
	logger    *zap.Logger
}

// NewFolderResolver builds a resolver over a folder snapshot. threshold
// is the minimum token-overlap score a fuzzy match must reach.
func NewFolderResolver(folders []*CaseFolder, threshold float64, logger *zap.Logger) *FolderResolver {
	byKey := make(map[string]*CaseFolder, len(folders))
	for _, f := range folders {
		byKey[exactKey(f.Client, f.Matter)] = f
	}
	return &FolderResolver{
		folders:   folders,
		byKey:     byKey,
		threshold: threshold,
		logger:    logger,
	}
}

// Resolve finds the destination folder for an identity. Matching order:
// exact (client, matter), case-number containment in the folder name,
// then token-overlap scoring against the case style.
func (r *FolderResolver) Resolve(identity CaseIdentity) (*CaseFolder, error) {
	if identity.Client != "" && identity.Matter != "" {
		if f, ok := r.byKey[exactKey(identity.Client, identity.Matter)]; ok {
			return f, nil
		}
	}

	if identity.CaseNumber != "" {
		if f := r.matchCaseNumber(identity.CaseNumber); f != nil {
			return f, nil
		}
	}

	if f := r.matchStyle(identity.Style); f != nil {
		return f, nil
	}

	r.logger.Warn("no case folder resolved",
		zap.String("client", identity.Client),
		zap.String("matter", identity.Matter),
		zap.String("style", identity.Style),
		zap.String("case_number", identity.CaseNumber))
	return nil, fmt.Errorf("resolve %q: %w", identity.Style, ErrNotFoundFolder)
}

// matchCaseNumber looks for the court case number inside folder names.
// Only an unambiguous hit counts.
func (r *FolderResolver) matchCaseNumber(caseNumber string) *CaseFolder {
	needle := Normalize(caseNumber)
	if needle == "" {
		return nil
	}
	var hits []*CaseFolder
	for _, f := range r.folders {
		if strings.Contains(Normalize(f.Matter), needle) ||
			strings.Contains(Normalize(f.Style), needle) {
			hits = append(hits, f)
		}
	}
	if len(hits) == 1 {
		return hits[0]
	}
	if len(hits) > 1 {
		r.logger.Warn("case number matches multiple folders, leaving unresolved",
			zap.String("case_number", caseNumber),
			zap.Int("matches", len(hits)))
	}
	return nil
}

// matchStyle scores folders by token overlap with the style text and
// returns the best one above the threshold. Ties break by most recently
// modified folder, then lexicographic path, so resolution stays
// deterministic within a run.
func (r *FolderResolver) matchStyle(style string) *CaseFolder {
	queryTokens := tokenize(style)
	if len(queryTokens) == 0 {
		return nil
	}

	type scored struct {
		folder *CaseFolder
		score  float64
	}
	var candidates []scored
	for _, f := range r.folders {
		s := overlapScore(queryTokens, tokenize(f.Style))
		if s >= r.threshold {
			candidates = append(candidates, scored{folder: f, score: s})
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		if !candidates[i].folder.ModifiedAt.Equal(candidates[j].folder.ModifiedAt) {
			return candidates[i].folder.ModifiedAt.After(candidates[j].folder.ModifiedAt)
		}
		return candidates[i].folder.Path < candidates[j].folder.Path
	})

	best := candidates[0]
	r.logger.Debug("fuzzy folder match",
		zap.String("style", style),
		zap.String("folder", best.folder.Path),
		zap.Float64("score", best.score))
	return best.folder
}

// overlapScore is the fraction of query tokens present in the candidate
// token set.
func overlapScore(query, candidate []string) float64 {
	if len(query) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(candidate))
	for _, t := range candidate {
		set[t] = struct{}{}
	}
	matched := 0
	for _, t := range query {
		if _, ok := set[t]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(query))
}

// tokenize splits normalized text into discriminating tokens.
func tokenize(s string) []string {
	fields := strings.Fields(Normalize(s))
	tokens := fields[:0]
	for _, f := range fields {
		if len(f) >= minTokenLen && !stopWord(f) {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// stopWord filters the caption boilerplate every style shares.
func stopWord(s string) bool {
	switch s {
	case "the", "and", "inc", "llc", "corp", "company", "insurance":
		return true
	}
	return false
}

var normalizer = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize case-folds, strips diacritics and punctuation, and collapses
// whitespace, so captions typed by different clerks compare equal.
func Normalize(s string) string {
	folded, _, err := transform.String(normalizer, s)
	if err != nil {
		folded = s
	}
	var b strings.Builder
	b.Grow(len(folded))
	lastSpace := true
	for _, r := range strings.ToLower(folded) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		case !lastSpace:
			b.WriteRune(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

func exactKey(client, matter string) string {
	return Normalize(client) + "/" + Normalize(matter)
}

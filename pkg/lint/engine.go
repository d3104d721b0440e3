package lint

import (
	"context"
	"fmt"
	"time"

	"github.com/yaklabco/mdstyle/internal/logging"
	"github.com/yaklabco/mdstyle/pkg/document"
)

// Result contains the outcome of one lint pass.
type Result struct {
	// Document is the snapshot that was linted.
	Document *document.Document

	// Diagnostics are sorted by offset, ties in rule execution order.
	Diagnostics []Diagnostic
}

// HasIssues returns true if any diagnostics were found.
func (r *Result) HasIssues() bool {
	return len(r.Diagnostics) > 0
}

// IssueCount returns the total number of diagnostics.
func (r *Result) IssueCount() int {
	return len(r.Diagnostics)
}

// Engine runs the rules of a Plan over documents.
//
// An Engine holds no per-pass state: every pass builds fresh checkers, so a
// single Engine may lint many documents concurrently. Checkers of one pass
// run sequentially in plan order.
type Engine struct {
	// Classifier supplies front matter and code block ranges. Nil treats
	// the whole document as ordinary text.
	Classifier ScopeClassifier

	// Observer receives per-rule and per-pass statistics. May be nil.
	Observer Observer
}

// NewEngine creates a new Engine with the given classifier.
func NewEngine(classifier ScopeClassifier) *Engine {
	return &Engine{Classifier: classifier}
}

// Lint copies content into a new document and lints it.
func (e *Engine) Lint(ctx context.Context, path string, content []byte, plan *Plan) (*Result, error) {
	return e.LintDocument(ctx, document.New(path, content), plan)
}

// LintDocument runs one pass over doc.
//
// Any checker error or panic aborts the pass; no partial diagnostics are
// returned.
func (e *Engine) LintDocument(ctx context.Context, doc *document.Document, plan *Plan) (*Result, error) {
	started := time.Now()
	observer := e.observer()

	diags, err := e.lint(ctx, doc, plan)

	observer.PassCompleted(PassStats{
		Path:        doc.Path,
		Diagnostics: len(diags),
		Duration:    time.Since(started),
		Err:         err,
	})
	if err != nil {
		return nil, err
	}

	return &Result{Document: doc, Diagnostics: diags}, nil
}

func (e *Engine) lint(ctx context.Context, doc *document.Document, plan *Plan) ([]Diagnostic, error) {
	if plan == nil {
		return nil, ErrNilPlan
	}

	scope, err := e.classify(ctx, doc)
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	var diags []Diagnostic

	for _, rule := range plan.Rules {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("linting cancelled: %w", ctx.Err())
		default:
		}

		ruleDiags, stats, err := runRule(doc, scope, rule, plan.Env)
		e.observer().RuleCompleted(stats)
		if err != nil {
			return nil, err
		}

		logger.Debug("rule completed",
			logging.FieldPath, doc.Path,
			logging.FieldRule, stats.RuleID,
			logging.FieldMatches, stats.Matches,
			logging.FieldSkipped, stats.Skipped,
			logging.FieldFindings, stats.Findings,
		)

		diags = append(diags, ruleDiags...)
	}

	SortDiagnostics(diags)
	for i := range diags {
		diags[i].FilePath = doc.Path
		diags[i].Line, diags[i].Column = doc.LineAt(diags[i].Offset)
	}

	return diags, nil
}

func (e *Engine) classify(ctx context.Context, doc *document.Document) (Scope, error) {
	if e.Classifier == nil {
		return NoScope{}, nil
	}
	scope, err := e.Classifier.Classify(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("classify %s: %w", doc.Path, err)
	}
	if scope == nil {
		return NoScope{}, nil
	}
	return scope, nil
}

func (e *Engine) observer() Observer {
	if e.Observer == nil {
		return nopObserver{}
	}
	return e.Observer
}

// runRule feeds every locator match of one rule to a fresh checker.
func runRule(doc *document.Document, scope Scope, rule ActiveRule, env Env) (diags []Diagnostic, stats RuleStats, err error) {
	def := rule.Definition
	stats.RuleID = def.ID
	started := time.Now()
	offset := -1

	defer func() {
		stats.Duration = time.Since(started)
		if recovered := recover(); recovered != nil {
			diags = nil
			err = &RuleError{RuleID: def.ID, Offset: offset, Err: fmt.Errorf("%w: %v", ErrRulePanic, recovered)}
		}
	}()

	env.Scope = scope
	checker := def.New(rule.Setting, env)
	matches := def.Pattern.FindAllStringSubmatchIndex(doc.Content, -1)
	stats.Matches = len(matches)

	for _, match := range matches {
		if scope.InFrontMatter(match[0]) || (!def.BlockAware && scope.InCodeBlock(match[0])) {
			stats.Skipped++
			continue
		}

		start, end := match[0], match[1]
		if group := def.Group; group > 0 && match[2*group] >= 0 {
			start, end = match[2*group], match[2*group+1]
		}

		offset = start
		findings, testErr := checker.Test(doc, start, end)
		stats.Tested++
		if testErr != nil {
			return nil, stats, &RuleError{RuleID: def.ID, Offset: start, Err: testErr}
		}

		for _, finding := range findings {
			diags = append(diags, Diagnostic{
				Offset:      finding.Offset,
				RuleID:      def.ID,
				RuleName:    def.Name,
				Description: def.Description,
				Message:     finding.Message,
			})
		}
		stats.Findings += len(findings)

		if def.EarlyStop {
			break
		}
	}

	return diags, stats, nil
}

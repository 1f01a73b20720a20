// Package pipeline sequences a report run: locate and expand the input
// archive, extract text from each contained document, classify it against
// the rule schema, walk the matched group's question tree, aggregate the
// all-absent groupings, and render everything into one Word report.
package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/conveydocs/searchreport/internal/config"
	"github.com/conveydocs/searchreport/internal/engine"
	"github.com/conveydocs/searchreport/internal/extract"
	"github.com/conveydocs/searchreport/internal/report"
	"github.com/conveydocs/searchreport/internal/rules"
)

// NoDocumentsMessage is rendered when nothing in the archive could be
// classified. The run still produces a complete report; an empty result
// must be stated, not silently absent.
const NoDocumentsMessage = "No matching documents were found in the supplied archive."

// TextExtractor is the extraction dependency; satisfied by
// *extract.Extractor and by stubs in tests.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (extract.Document, error)
}

// Pipeline drives one batch run. Documents are processed strictly
// sequentially in lexical filename order so output is reproducible.
type Pipeline struct {
	cfg       *config.Config
	schema    *rules.Schema
	extractor TextExtractor
	logger    *slog.Logger
}

// New assembles a pipeline.
func New(cfg *config.Config, schema *rules.Schema, extractor TextExtractor, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{cfg: cfg, schema: schema, extractor: extractor, logger: logger}
}

// Run executes the batch. ErrNoArchive propagates untouched so the caller
// can exit cleanly; configuration and archive errors are fatal; anything
// local to a single document is logged and skipped.
func (p *Pipeline) Run(ctx context.Context) error {
	docs, err := p.collect(ctx)
	if err != nil {
		return err
	}

	rep := p.process(docs)

	done := p.stageTimer("render")
	err = rep.SaveDocx(p.cfg.OutputPath)
	done()
	if err != nil {
		return err
	}
	p.logger.Info("report written", "path", p.cfg.OutputPath, "documents", len(docs))

	if p.cfg.KeepText && !p.cfg.FromCache {
		p.persistText(docs)
	}
	return nil
}

// collect produces the ordered document set, either by extracting from
// the input archive or by replaying the text cache.
func (p *Pipeline) collect(ctx context.Context) ([]extract.Document, error) {
	if p.cfg.FromCache {
		docs, err := extract.ReadCached(p.cfg.WorkDir)
		if err != nil {
			return nil, err
		}
		p.logger.Info("replaying from text cache", "documents", len(docs))
		return docs, nil
	}

	zipPath, err := FindArchive(p.cfg.InputDir)
	if err != nil {
		return nil, err
	}
	p.logger.Info("found input archive", "archive", filepath.Base(zipPath))

	if err := Expand(zipPath, p.cfg.WorkDir); err != nil {
		return nil, err
	}
	paths, err := ListDocuments(p.cfg.WorkDir)
	if err != nil {
		return nil, err
	}

	var docs []extract.Document
	for _, path := range paths {
		done := p.stageTimer("extract " + filepath.Base(path))
		doc, err := p.extractor.Extract(ctx, path)
		done()
		if err != nil {
			p.logger.Warn("skipping document", "source", filepath.Base(path), "error", err)
			continue
		}
		p.logger.Debug("extracted document", "source", doc.Source, "method", doc.Method,
			"chars", len(doc.Text))
		if p.cfg.KeepText {
			if err := extract.WriteCache(p.cfg.WorkDir, doc); err != nil {
				p.logger.Warn("failed to cache extracted text", "source", doc.Source, "error", err)
			}
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// process renders the document set into a report.
func (p *Pipeline) process(docs []extract.Document) *report.Report {
	rep := report.New()

	if p.schema.Title != "" {
		rep.Heading(1, p.schema.Title)
	}
	for _, scope := range p.schema.Scope {
		if scope.Heading != "" {
			rep.Heading(2, scope.Heading)
		}
		if scope.Body != "" {
			rep.Paragraph(scope.Body)
		}
	}

	matched := make(map[string]bool)
	classified := 0
	for _, doc := range docs {
		if strings.TrimSpace(doc.Text) == "" {
			// Extraction failure, already logged by the extractor; distinct
			// from "classified but every section absent".
			p.logger.Warn("no text extracted, skipping", "source", doc.Source)
			continue
		}
		group, ok := engine.Classify(doc.Text, p.schema)
		if !ok {
			p.logger.Info("document not identified", "source", doc.Source)
			continue
		}
		matched[group.Identifier] = true
		classified++
		p.renderDocument(rep, doc, group)
	}

	if classified == 0 {
		rep.Paragraph(NoDocumentsMessage)
	}
	for i := range p.schema.Groups {
		group := &p.schema.Groups[i]
		if !matched[group.Identifier] && group.NotFoundMessage != "" {
			if group.Heading != "" {
				rep.Heading(2, group.Heading)
			}
			rep.Paragraph(group.NotFoundMessage)
		}
	}
	return rep
}

// renderDocument walks one classified document's question tree and emits
// its findings.
func (p *Pipeline) renderDocument(rep *report.Report, doc extract.Document, group *rules.Group) {
	done := p.stageTimer("walk " + doc.Source)
	defer done()

	if group.Heading != "" {
		rep.Heading(2, group.Heading)
	}
	rep.Italic("Source: " + doc.Source)
	if group.FoundMessage != "" {
		rep.Paragraph(group.FoundMessage)
	}

	walker := engine.NewWalker(p.schema.TrackedSections())
	entries := walker.Walk(doc.Text, group.Questions, 3)
	rollup := engine.Aggregate(walker.Results, p.schema.Groupings)

	// Consecutive rendered entries sharing a section name share one
	// heading. Decided here, after suppression: a suppressed sibling must
	// not steal the heading its survivors rely on.
	lastHeading := ""
	for _, entry := range entries {
		res := entry.Result
		// Replace-not-append: a roll-up swallows its members' individual
		// absent statements. Pattern mismatches keep their note; hiding
		// them would mask a broken extract pattern.
		if rollup.Suppress[entry.Section.Name] && res.Message == entry.Section.NoneMessage {
			continue
		}
		if entry.Section.Name != "" && entry.Section.Name != lastHeading {
			rep.Heading(entry.Level, entry.Section.Name)
			lastHeading = entry.Section.Name
		}
		if res.Found && res.Extracted != "" {
			rep.Italic(res.Message)
		} else if res.Message != "" {
			rep.Paragraph(res.Message)
		}
	}
	for _, msg := range rollup.Messages {
		rep.Paragraph(msg)
	}
	rep.PageBreak()
}

// persistText writes the audit outputs: a combined text file in the work
// directory and a companion ZIP next to the report.
func (p *Pipeline) persistText(docs []extract.Document) {
	if len(docs) == 0 {
		return
	}
	combined := filepath.Join(p.cfg.WorkDir, extract.CombinedName)
	if err := extract.WriteCombined(combined, docs); err != nil {
		p.logger.Warn("failed to write combined text", "error", err)
	}
	archive := filepath.Join(filepath.Dir(p.cfg.OutputPath), "extracted_text.zip")
	if err := extract.WriteArchive(archive, docs); err != nil {
		p.logger.Warn("failed to write text archive", "error", err)
	}
}

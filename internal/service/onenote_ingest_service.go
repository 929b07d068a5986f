package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/entity"
	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/pkg/logger"
	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/prompts"
	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/repository/contract"
	"github.com/AnzorAslanukov/ServiceDeskHelper/pkg/embedding"
	"github.com/AnzorAslanukov/ServiceDeskHelper/pkg/llm"
	"github.com/AnzorAslanukov/ServiceDeskHelper/pkg/utils"
)

type IOnenoteIngestService interface {
	// IngestDirectory walks a OneNote export tree laid out as
	// <dir>/<notebook>/<section>.docx and ingests every section. With
	// force set, previously ingested sections are deleted and redone.
	IngestDirectory(ctx context.Context, dir string, force bool) error
	// IngestNotebook ingests a single notebook directory. With force set,
	// every page and chunk previously stored for the notebook is deleted
	// before the sections are redone.
	IngestNotebook(ctx context.Context, dir string, notebookName string, force bool) error
	IngestSection(ctx context.Context, notebookName, sectionName, docxPath string, force bool) error
}

type onenoteIngestService struct {
	pages             contract.OnenotePageRepository
	chunks            contract.OnenoteChunkRepository
	embeddingProvider embedding.EmbeddingProvider
	llmProvider       llm.LLMProvider
	chunkSize         int
	chunkOverlap      int
	logger            logger.ILogger
}

func NewOnenoteIngestService(
	pages contract.OnenotePageRepository,
	chunks contract.OnenoteChunkRepository,
	embeddingProvider embedding.EmbeddingProvider,
	llmProvider llm.LLMProvider,
	chunkSize int,
	chunkOverlap int,
	sysLogger logger.ILogger,
) IOnenoteIngestService {
	return &onenoteIngestService{
		pages:             pages,
		chunks:            chunks,
		embeddingProvider: embeddingProvider,
		llmProvider:       llmProvider,
		chunkSize:         chunkSize,
		chunkOverlap:      chunkOverlap,
		logger:            sysLogger,
	}
}

// parsedPage matches the JSON array shape the parse prompt asks for.
type parsedPage struct {
	PageTitle    string `json:"page_title"`
	PageBodyText string `json:"page_body_text"`
	PageDatetime string `json:"page_datetime"`
	IsSummary    bool   `json:"is_summary"`
}

func (s *onenoteIngestService) IngestDirectory(ctx context.Context, dir string, force bool) error {
	notebooks, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read onenote data dir %s: %w", dir, err)
	}

	for _, nb := range notebooks {
		if !nb.IsDir() {
			continue
		}
		if err := s.IngestNotebook(ctx, dir, nb.Name(), force); err != nil {
			return err
		}
	}
	return nil
}

func (s *onenoteIngestService) IngestNotebook(ctx context.Context, dir string, notebookName string, force bool) error {
	if force {
		exists, err := s.chunks.NotebookExists(ctx, notebookName)
		if err != nil {
			return err
		}
		if !exists {
			// A notebook can have pages without chunks when every page
			// body was blank, so check the pages table too.
			exists, err = s.pages.WorkbookExists(ctx, notebookName)
			if err != nil {
				return err
			}
		}
		if exists {
			s.logger.Info("onenote", "Force re-ingest, deleting notebook records", map[string]interface{}{
				"notebook": notebookName,
			})
			if err := s.chunks.DeleteByNotebook(ctx, notebookName); err != nil {
				return err
			}
			if err := s.pages.DeleteByWorkbook(ctx, notebookName); err != nil {
				return err
			}
		}
	}

	sections, err := os.ReadDir(filepath.Join(dir, notebookName))
	if err != nil {
		return err
	}
	for _, sec := range sections {
		if sec.IsDir() || !strings.EqualFold(filepath.Ext(sec.Name()), ".docx") {
			continue
		}
		sectionName := strings.TrimSuffix(sec.Name(), filepath.Ext(sec.Name()))
		docxPath := filepath.Join(dir, notebookName, sec.Name())
		if err := s.IngestSection(ctx, notebookName, sectionName, docxPath, force); err != nil {
			return err
		}
	}
	return nil
}

func (s *onenoteIngestService) IngestSection(ctx context.Context, notebookName, sectionName, docxPath string, force bool) error {
	exists, err := s.chunks.SectionExists(ctx, sectionName)
	if err != nil {
		return err
	}
	if exists {
		if !force {
			s.logger.Info("onenote", "Section already ingested, skipping", map[string]interface{}{
				"notebook": notebookName,
				"section":  sectionName,
			})
			return nil
		}
		if err := s.chunks.DeleteBySection(ctx, sectionName); err != nil {
			return err
		}
	}

	rawText, err := utils.ExtractDocxText(docxPath)
	if err != nil {
		return err
	}

	pages, err := s.parsePages(ctx, rawText)
	if err != nil {
		return fmt.Errorf("failed to parse section %s: %w", sectionName, err)
	}

	s.logger.Info("onenote", "Parsed section", map[string]interface{}{
		"notebook": notebookName,
		"section":  sectionName,
		"pages":    len(pages),
	})

	for _, page := range pages {
		pageVec, err := s.embeddingProvider.Generate(page.PageTitle + "\n" + page.PageBodyText)
		if err != nil {
			return fmt.Errorf("failed to embed page %q: %w", page.PageTitle, err)
		}
		pageEntity := &entity.OnenotePage{
			PageTitle:    page.PageTitle,
			PageBodyText: page.PageBodyText,
			PageDatetime: page.PageDatetime,
			IsSummary:    page.IsSummary,
			WorkbookName: notebookName,
			SectionName:  sectionName,
			Embedding:    pageVec,
		}
		if err := s.pages.Create(ctx, pageEntity); err != nil {
			return err
		}

		pieces := utils.SplitText(page.PageBodyText, s.chunkSize, s.chunkOverlap)
		chunks := make([]*entity.OnenoteChunk, 0, len(pieces))
		for i, piece := range pieces {
			if strings.TrimSpace(piece) == "" {
				continue
			}
			vec, err := s.embeddingProvider.Generate(piece)
			if err != nil {
				return fmt.Errorf("failed to embed chunk %d of page %q: %w", i, page.PageTitle, err)
			}
			chunks = append(chunks, &entity.OnenoteChunk{
				ChunkTitle:   page.PageTitle,
				ChunkText:    piece,
				ChunkIndex:   i,
				NotebookName: notebookName,
				SectionName:  sectionName,
				Embedding:    vec,
			})
		}
		if err := s.chunks.CreateBulk(ctx, chunks); err != nil {
			return err
		}
	}

	return nil
}

func (s *onenoteIngestService) parsePages(ctx context.Context, rawText string) ([]parsedPage, error) {
	prompt := fmt.Sprintf(prompts.DocxParsePrompt, rawText)
	answer, err := s.llmProvider.Generate(ctx, prompt, llm.WithMaxTokens(4000))
	if err != nil {
		return nil, err
	}

	var pages []parsedPage
	if err := unmarshalLLMJSON(answer, &pages); err != nil {
		return nil, err
	}
	return pages, nil
}

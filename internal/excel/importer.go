// Package excel imports and exports the vocabulary as spreadsheet files.
package excel

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/example/readlog/internal/database"
	"github.com/example/readlog/internal/review"
	"github.com/example/readlog/pkg/models"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath          string // Path to the Excel or CSV file
	WordColumn        string // Column with the word
	DefinitionColumn  string // Column with the definition
	ContextColumn     string // Column with the sentence the word was met in
	BookColumn        string // Column with the book title
	TranslationColumn string // Column with the translation
	SheetName         string // Name of the sheet to import
	StartRow          int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		WordColumn:        "A",
		DefinitionColumn:  "B",
		ContextColumn:     "C",
		BookColumn:        "D",
		TranslationColumn: "E",
		SheetName:         "Sheet1",
		StartRow:          2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	BooksCreated   int
	Created        int
	Updated        int
	Skipped        int
	Errors         []string
}

// ImportWords imports words from an Excel or CSV file
func ImportWords(config ImportConfig) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return importFromCSV(config)
	}
	return importFromExcel(config)
}

// importFromExcel imports words from an Excel file
func importFromExcel(config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	result := &ImportResult{Errors: make([]string, 0)}
	books, err := loadBookIndex()
	if err != nil {
		return nil, err
	}

	for i, row := range rows {
		if i < config.StartRow-1 {
			continue
		}
		result.TotalProcessed++
		if err := processRow(row, config, books, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}

	return result, nil
}

// importFromCSV imports words from a CSV file using the same column layout
func importFromCSV(config ImportConfig) (*ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	result := &ImportResult{Errors: make([]string, 0)}
	books, err := loadBookIndex()
	if err != nil {
		return nil, err
	}

	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		rowNum++
		if rowNum < config.StartRow {
			continue
		}
		result.TotalProcessed++
		if err := processRow(row, config, books, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
	}

	return result, nil
}

// bookIndex maps lowercased book titles to IDs for get-or-create lookups
type bookIndex struct {
	repo   *database.BookRepository
	byName map[string]int64
}

func loadBookIndex() (*bookIndex, error) {
	repo := database.NewBookRepository()
	existing, err := repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get existing books: %w", err)
	}

	idx := &bookIndex{repo: repo, byName: make(map[string]int64)}
	for _, book := range existing {
		idx.byName[strings.ToLower(book.Title)] = book.ID
	}
	return idx, nil
}

func (idx *bookIndex) getOrCreate(title string, result *ImportResult) (int64, error) {
	if id, ok := idx.byName[strings.ToLower(title)]; ok {
		return id, nil
	}
	book := &models.Book{Title: title}
	if err := idx.repo.Create(book); err != nil {
		return 0, fmt.Errorf("failed to create book %q: %w", title, err)
	}
	idx.byName[strings.ToLower(title)] = book.ID
	result.BooksCreated++
	return book.ID, nil
}

// processRow imports a single spreadsheet row
func processRow(row []string, config ImportConfig, books *bookIndex, result *ImportResult) error {
	text := cleanCell(cellAt(row, config.WordColumn))
	if text == "" {
		result.Skipped++
		return nil
	}

	definition := cleanCell(cellAt(row, config.DefinitionColumn))
	context := cleanCell(cellAt(row, config.ContextColumn))
	bookTitle := cleanCell(cellAt(row, config.BookColumn))
	translation := cleanCell(cellAt(row, config.TranslationColumn))

	var bookID *int64
	if bookTitle != "" {
		id, err := books.getOrCreate(bookTitle, result)
		if err != nil {
			return err
		}
		bookID = &id
	}

	wordRepo := database.NewWordRepository()
	existing, err := wordRepo.FindByText(text)
	switch {
	case err == nil:
		// Refresh the descriptive fields but never touch the scheduling
		// state of a word that is already in review.
		if definition != "" {
			existing.Definition = definition
		}
		if context != "" {
			existing.Context = context
		}
		if translation != "" {
			existing.Translation = translation
		}
		if bookID != nil {
			existing.BookID = bookID
		}
		if err := wordRepo.Update(existing); err != nil {
			return fmt.Errorf("failed to update word %q: %w", text, err)
		}
		result.Updated++
		return nil

	case errors.Is(err, database.ErrNotFound):
		word := &models.Word{
			BookID:      bookID,
			Text:        text,
			Definition:  definition,
			Context:     context,
			Translation: translation,
		}
		review.SeedNewWord(word, time.Now())
		if err := wordRepo.Create(word); err != nil {
			return fmt.Errorf("failed to create word %q: %w", text, err)
		}
		result.Created++
		return nil

	default:
		return fmt.Errorf("failed to look up word %q: %w", text, err)
	}
}

// cellAt returns the value of the given spreadsheet column in a row
func cellAt(row []string, column string) string {
	idx := columnToIndex(column)
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// cleanCell trims whitespace and surrounding quotes from a cell value
func cleanCell(value string) string {
	value = strings.TrimSpace(value)
	value = strings.Trim(value, `"'`)
	return strings.TrimSpace(value)
}

// columnToIndex converts a column letter ("A", "B", ..., "AA") to a 0-based index
func columnToIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	if column == "" {
		return -1
	}
	index := 0
	for _, ch := range column {
		if ch < 'A' || ch > 'Z' {
			return -1
		}
		index = index*26 + int(ch-'A') + 1
	}
	return index - 1
}

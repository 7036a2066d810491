package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/example/readlog/internal/database"
)

var exportHeader = []string{"Word", "Definition", "Context", "Book", "Translation", "Due", "Interval", "Ease", "Reps"}

// ExportWords writes the whole vocabulary, including scheduling state,
// to an Excel file for backup.
func ExportWords(filePath string) (int, error) {
	wordRepo := database.NewWordRepository()
	bookRepo := database.NewBookRepository()

	words, err := wordRepo.GetAll()
	if err != nil {
		return 0, fmt.Errorf("failed to get words: %w", err)
	}

	bookTitles := make(map[int64]string)
	books, err := bookRepo.GetAll()
	if err != nil {
		return 0, fmt.Errorf("failed to get books: %w", err)
	}
	for _, book := range books {
		bookTitles[book.ID] = book.Title
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Sheet1"

	for col, title := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return 0, err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return 0, err
		}
	}

	for i, word := range words {
		bookTitle := ""
		if word.BookID != nil {
			bookTitle = bookTitles[*word.BookID]
		}
		values := []interface{}{
			word.Text,
			word.Definition,
			word.Context,
			bookTitle,
			word.Translation,
			word.SrsDueAt.Format("2006-01-02 15:04:05"),
			word.SrsIntervalDays,
			word.SrsEase,
			word.SrsReps,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return 0, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return 0, err
			}
		}
	}

	if err := f.SaveAs(filePath); err != nil {
		return 0, fmt.Errorf("failed to save export file: %w", err)
	}
	return len(words), nil
}

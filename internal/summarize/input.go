package summarize

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mpetrov/digest/internal/common"
)

// ReadURLs loads the URL list from a .txt file (one URL per line, blank lines
// and '#' comments skipped), a .csv file (column "url"), or a .xlsx workbook
// (first sheet, column "url"). Any other extension is an input error. URLs
// are not deduplicated; every line becomes one pipeline item.
func ReadURLs(path string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return readURLsFromText(path)
	case ".csv":
		return readURLsFromCSV(path)
	case ".xlsx":
		return readURLsFromExcel(path)
	default:
		return nil, fmt.Errorf("unsupported input type %q: use .txt, .csv, or .xlsx", filepath.Ext(path))
	}
}

func readURLsFromText(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, common.SanitizeURL(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return urls, nil
}

func readURLsFromCSV(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return urlsFromRows(rows, "CSV")
}

func readURLsFromExcel(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	return urlsFromRows(rows, "spreadsheet")
}

// urlsFromRows extracts URLs from tabular input: the first row is the header
// and must name a "url" column (case-insensitive).
func urlsFromRows(rows [][]string, source string) ([]string, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	urlCol := -1
	for i, name := range rows[0] {
		if strings.TrimSpace(strings.ToLower(name)) == "url" {
			urlCol = i
			break
		}
	}
	if urlCol < 0 {
		return nil, fmt.Errorf("%s input must have a column named %q", source, "url")
	}

	var urls []string
	for _, row := range rows[1:] {
		if urlCol >= len(row) {
			continue
		}
		u := strings.TrimSpace(row[urlCol])
		if u == "" {
			continue
		}
		urls = append(urls, common.SanitizeURL(u))
	}
	return urls, nil
}

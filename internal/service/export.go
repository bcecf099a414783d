package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"andromeda/internal/logger"
	"andromeda/internal/query"
	"andromeda/internal/utils"
)

// Export выгружает каталог в файл указанного формата (csv, xlsx, json) и
// возвращает путь к нему.
func (s *catalogService) Export(ctx context.Context, format string) (string, error) {
	items, err := s.List(ctx, ListOptions{Limit: catalogFetchMax, Sort: query.SortInsertedDesc})
	if err != nil {
		return "", fmt.Errorf("failed to get catalog data: %w", err)
	}
	if len(items) == 0 {
		return "", fmt.Errorf("no catalog data to export")
	}

	timestamp := time.Now().UTC().Format("20060102_150405")

	var path string
	switch format {
	case "csv":
		path = filepath.Join(s.outputDir, fmt.Sprintf("catalog_export_%s.csv", timestamp))
		err = utils.WriteCatalogCSV(path, items)
	case "excel", "xlsx":
		path = filepath.Join(s.outputDir, fmt.Sprintf("catalog_export_%s.xlsx", timestamp))
		err = utils.WriteCatalogExcel(path, items)
	case "json":
		path = filepath.Join(s.outputDir, fmt.Sprintf("catalog_export_%s.json", timestamp))
		err = utils.WriteCatalogJSON(path, items)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return "", err
	}

	logger.WithComponent("catalog").Infof("catalog exported: %s (%d items)", path, len(items))
	return path, nil
}

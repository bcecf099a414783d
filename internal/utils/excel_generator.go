package utils

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/xuri/excelize/v2"

	"andromeda/internal/models"
)

const catalogSheet = "Catalog"

// WriteCatalogExcel создает Excel файл с записями каталога OSDR
func WriteCatalogExcel(filepath string, items []models.CatalogItem) error {
	f := excelize.NewFile()
	defer f.Close()

	// Создаем новый лист
	index, err := f.NewSheet(catalogSheet)
	if err != nil {
		return err
	}

	// Устанавливаем заголовки
	headers := []string{"ID", "Dataset ID", "Title", "Status", "Updated At", "Inserted At", "REST URL"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(catalogSheet, cell, header)
	}

	// Заполняем данные
	for rowIdx, item := range items {
		rowNum := rowIdx + 2 // Заголовок в первой строке

		f.SetCellValue(catalogSheet, fmt.Sprintf("A%d", rowNum), item.ID)
		f.SetCellValue(catalogSheet, fmt.Sprintf("B%d", rowNum), item.DatasetIDOrEmpty())
		f.SetCellValue(catalogSheet, fmt.Sprintf("C%d", rowNum), item.TitleOrEmpty())
		if item.Status != nil {
			f.SetCellValue(catalogSheet, fmt.Sprintf("D%d", rowNum), *item.Status)
		}
		if item.UpdatedAt != nil {
			f.SetCellValue(catalogSheet, fmt.Sprintf("E%d", rowNum),
				item.UpdatedAt.Format("2006-01-02 15:04:05"))
		}
		f.SetCellValue(catalogSheet, fmt.Sprintf("F%d", rowNum),
			item.InsertedAt.Format("2006-01-02 15:04:05"))
		f.SetCellValue(catalogSheet, fmt.Sprintf("G%d", rowNum), restURLOrEmpty(item))
	}

	// Авто-ширина колонок
	for i := 1; i <= len(headers); i++ {
		colName, _ := excelize.ColumnNumberToName(i)
		width := 20.0
		if colName == "C" || colName == "G" {
			width = 50.0
		}
		f.SetColWidth(catalogSheet, colName, colName, width)
	}

	createCatalogInfoSheet(f, items)

	// Устанавливаем активный лист
	f.SetActiveSheet(index)

	// Сохраняем файл
	if err := f.SaveAs(filepath); err != nil {
		return err
	}

	return nil
}

func createCatalogInfoSheet(f *excelize.File, items []models.CatalogItem) {
	// Создаем лист с информацией
	f.NewSheet("Info")

	withStatus := 0
	for _, item := range items {
		if item.Status != nil && *item.Status != "" {
			withStatus++
		}
	}

	rows := [][2]interface{}{
		{"Report Generated", time.Now().Format("2006-01-02 15:04:05")},
		{"Total Records", len(items)},
		{"Records With Status", withStatus},
	}
	for i, row := range rows {
		f.SetCellValue("Info", fmt.Sprintf("A%d", i+1), row[0])
		f.SetCellValue("Info", fmt.Sprintf("B%d", i+1), row[1])
	}
}

// WriteCatalogCSV сохраняет записи каталога в CSV файл
func WriteCatalogCSV(filepath string, items []models.CatalogItem) error {
	file, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"id", "dataset_id", "title", "status", "updated_at", "inserted_at", "rest_url"}); err != nil {
		return err
	}

	for _, item := range items {
		status := ""
		if item.Status != nil {
			status = *item.Status
		}
		updated := ""
		if item.UpdatedAt != nil {
			updated = item.UpdatedAt.Format(time.RFC3339)
		}
		row := []string{
			fmt.Sprintf("%d", item.ID),
			item.DatasetIDOrEmpty(),
			item.TitleOrEmpty(),
			status,
			updated,
			item.InsertedAt.Format(time.RFC3339),
			restURLOrEmpty(item),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func restURLOrEmpty(item models.CatalogItem) string {
	if u := item.RestURL(); u != nil {
		return *u
	}
	return ""
}

// WriteCatalogJSON сохраняет записи каталога в JSON файл
func WriteCatalogJSON(filepath string, items []models.CatalogItem) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}

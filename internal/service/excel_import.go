package service

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"bukubesar-api/internal/models"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Import sheets carry one jurnal per row under these headers. id_profil is
// optional; the other columns are required.
var jurnalImportHeaders = []string{
	"tanggal", "nama_transaksi", "nominal", "id_tipe_jurnal", "id_debit", "id_kredit", "id_profil",
}

// JurnalTemplate builds an empty import sheet with one example row.
func (s *ExcelService) JurnalTemplate() (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Jurnal"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	headers := make([]interface{}, len(jurnalImportHeaders))
	for i, h := range jurnalImportHeaders {
		headers[i] = h
	}
	example := []interface{}{
		"2024-01-05", "Setoran modal", 1000000, "<id_tipe_jurnal>", "<id_data_akun debit>", "<id_data_akun kredit>", "",
	}
	if err := writeSheet(f, sheetName, headers, [][]interface{}{example}, []float64{12, 35, 16, 38, 38, 38, 38}); err != nil {
		return nil, err
	}
	return f.WriteToBuffer()
}

// ParseJurnalImport reads the first sheet of an xlsx import. Row errors are
// keyed like bulk requests: jurnal[i].field, i counting data rows from 0.
func (s *ExcelService) ParseJurnalImport(r io.Reader) ([]models.JurnalRequest, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fieldError("file", "The file must be a valid xlsx workbook.")
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0), excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read import sheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, fieldError("file", "The file contains no jurnal rows.")
	}

	columns := map[string]int{}
	for i, h := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, h := range jurnalImportHeaders[:6] {
		if _, ok := columns[h]; !ok {
			return nil, fieldError("file", fmt.Sprintf("The file is missing the %s column.", h))
		}
	}

	cell := func(row []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	fields := map[string]string{}
	var reqs []models.JurnalRequest
	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		prefix := fmt.Sprintf("jurnal[%d].", len(reqs))

		req := models.JurnalRequest{
			TipeJurnalID:  cell(row, "id_tipe_jurnal"),
			Tanggal:       importDate(cell(row, "tanggal")),
			NamaTransaksi: cell(row, "nama_transaksi"),
			DebitID:       cell(row, "id_debit"),
			KreditID:      cell(row, "id_kredit"),
		}
		if raw := cell(row, "nominal"); raw != "" {
			nominal, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
			if err != nil {
				fields[prefix+"nominal"] = "The nominal must be a number."
			} else {
				req.Nominal = &nominal
			}
		}
		if profil := cell(row, "id_profil"); profil != "" {
			req.ProfilID = &profil
		}
		reqs = append(reqs, req)
	}

	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}
	if len(reqs) == 0 {
		return nil, fieldError("file", "The file contains no jurnal rows.")
	}
	return reqs, nil
}

// importDate accepts both text dates and Excel date serials.
func importDate(raw string) string {
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return raw
	}
	return t.Format(models.DateLayout)
}

func blankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

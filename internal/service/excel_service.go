package service

import (
	"bytes"
	"fmt"

	"bukubesar-api/internal/models"

	"github.com/xuri/excelize/v2"
)

type ExcelService struct{}

func NewExcelService() *ExcelService {
	return &ExcelService{}
}

// ExportJurnal writes journal rows to a single "Jurnal" sheet.
func (s *ExcelService) ExportJurnal(rows []models.JurnalDetail) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Jurnal"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	headers := []interface{}{
		"Tanggal", "Tipe Jurnal", "Nama Transaksi",
		"Kode Debit", "Akun Debit", "Kode Kredit", "Akun Kredit", "Nominal",
	}
	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return nil, err
	}
	if err := styleHeader(f, sheetName, len(headers)); err != nil {
		return nil, err
	}

	for i, j := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		nominal, _ := j.Nominal.Float64()
		values := []interface{}{
			j.Tanggal.String(),
			j.TipeJurnal.Nama,
			j.NamaTransaksi,
			j.DebitAccount.Kode,
			j.DebitAccount.Nama,
			j.KreditAccount.Kode,
			j.KreditAccount.Nama,
			nominal,
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, err
		}
	}

	if len(rows) > 0 {
		numericStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
		if err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheetName, "H2", fmt.Sprintf("H%d", len(rows)+1), numericStyle); err != nil {
			return nil, err
		}
	}

	setColWidths(f, sheetName, []float64{12, 20, 35, 12, 25, 12, 25, 18})
	return f.WriteToBuffer()
}

// ExportChart writes the chart of accounts, one sheet per level.
func (s *ExcelService) ExportChart(akun []models.Akun, subAkun []models.SubAkun, dataAkun []models.DataAkun) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Akun"); err != nil {
		return nil, err
	}
	akunRows := make([][]interface{}, 0, len(akun))
	for _, a := range akun {
		akunRows = append(akunRows, []interface{}{a.Kode, a.Nama})
	}
	if err := writeSheet(f, "Akun", []interface{}{"Kode", "Nama"}, akunRows, []float64{10, 35}); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet("Sub Akun"); err != nil {
		return nil, err
	}
	subRows := make([][]interface{}, 0, len(subAkun))
	for _, sa := range subAkun {
		var parentKode int
		var parentNama string
		if sa.Akun != nil {
			parentKode, parentNama = sa.Akun.Kode, sa.Akun.Nama
		}
		subRows = append(subRows, []interface{}{sa.Kode, sa.Nama, parentKode, parentNama})
	}
	if err := writeSheet(f, "Sub Akun", []interface{}{"Kode", "Nama", "Kode Akun", "Akun"}, subRows, []float64{10, 35, 12, 30}); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet("Data Akun"); err != nil {
		return nil, err
	}
	dataRows := make([][]interface{}, 0, len(dataAkun))
	for _, d := range dataAkun {
		var parentKode int
		var parentNama string
		if d.SubAkun != nil {
			parentKode, parentNama = d.SubAkun.Kode, d.SubAkun.Nama
		}
		dataRows = append(dataRows, []interface{}{
			d.Kode, d.Nama, parentKode, parentNama, nullableAmount(d.Debit.Valid, d.Debit.Decimal.InexactFloat64()),
			nullableAmount(d.Kredit.Valid, d.Kredit.Decimal.InexactFloat64()),
		})
	}
	headers := []interface{}{"Kode", "Nama", "Kode Sub Akun", "Sub Akun", "Debit", "Kredit"}
	if err := writeSheet(f, "Data Akun", headers, dataRows, []float64{10, 35, 14, 30, 16, 16}); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)
	return f.WriteToBuffer()
}

func writeSheet(f *excelize.File, sheetName string, headers []interface{}, rows [][]interface{}, widths []float64) error {
	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return err
	}
	if err := styleHeader(f, sheetName, len(headers)); err != nil {
		return err
	}
	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheetName, cell, &rows[i]); err != nil {
			return err
		}
	}
	setColWidths(f, sheetName, widths)
	return nil
}

func styleHeader(f *excelize.File, sheetName string, columns int) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(columns, 1)
	return f.SetCellStyle(sheetName, "A1", last, headerStyle)
}

func setColWidths(f *excelize.File, sheetName string, widths []float64) {
	for i, width := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheetName, col, col, width)
	}
}

func nullableAmount(valid bool, v float64) interface{} {
	if !valid {
		return nil
	}
	return v
}

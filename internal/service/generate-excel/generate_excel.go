package generate_excel

import (
	"context"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"drubez-planner/internal/service/plan"
)

type DayPlanner interface {
	ComputeDayPlan(ctx context.Context, p plan.Params) (*plan.DayPlan, error)
}

type GenerateExcelService struct {
	planner DayPlanner
}

func NewGenerateService(planner DayPlanner) *GenerateExcelService {
	return &GenerateExcelService{planner: planner}
}

// GenerateExcel собирает дневной отчёт: потребность, выход, таймлайн линии.
// Все числа пишутся как есть, форматирование — забота Excel-шаблона.
func (g *GenerateExcelService) GenerateExcel(ctx context.Context, params plan.Params) ([]byte, error) {
	dayPlan, err := g.planner.ComputeDayPlan(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("compute day plan: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})

	// --- ЛИСТ 1: потребность по материалам ---
	demandSheet := "Potřeba"
	f.SetSheetName("Sheet1", demandSheet)

	demandHeaders := []string{"Materiál", "Kg"}
	for i, name := range demandHeaders {
		f.SetCellValue(demandSheet, cellName(i+1, 1), name)
	}

	// Стабильный порядок строк, map идёт как попало.
	materialIDs := make([]string, 0, len(dayPlan.Demand))
	for id := range dayPlan.Demand {
		materialIDs = append(materialIDs, id)
	}
	sort.Strings(materialIDs)

	for rowIdx, id := range materialIDs {
		rowNum := rowIdx + 2
		f.SetCellValue(demandSheet, cellName(1, rowNum), id)
		f.SetCellValue(demandSheet, cellName(2, rowNum), dayPlan.Demand[id])
	}
	f.SetCellStyle(demandSheet, "A1", cellName(len(demandHeaders), 1), headerStyle)

	// --- ЛИСТ 2: выход против потребности ---
	yieldSheet := "Výtěžnost"
	f.NewSheet(yieldSheet)

	yieldHeaders := []string{"Část", "Výroba kg", "Potřeba kg", "Rozdíl kg", "Korekce"}
	for i, name := range yieldHeaders {
		f.SetCellValue(yieldSheet, cellName(i+1, 1), name)
	}

	for rowIdx, p := range dayPlan.Yield.Parts {
		rowNum := rowIdx + 2
		f.SetCellValue(yieldSheet, cellName(1, rowNum), p.Name)
		f.SetCellValue(yieldSheet, cellName(2, rowNum), p.ProducedKg)
		f.SetCellValue(yieldSheet, cellName(3, rowNum), p.NeededKg)
		f.SetCellValue(yieldSheet, cellName(4, rowNum), p.DifferenceKg)
		if p.Overridden {
			f.SetCellValue(yieldSheet, cellName(5, rowNum), "ručně")
		}
	}
	f.SetCellStyle(yieldSheet, "A1", cellName(len(yieldHeaders), 1), headerStyle)

	// --- ЛИСТ 3: таймлайн линии ---
	lineSheet := "Linka"
	f.NewSheet(lineSheet)

	lineHeaders := []string{"Od", "Do", "Minuty", "Název", "Kusy", "Kg"}
	for i, name := range lineHeaders {
		f.SetCellValue(lineSheet, cellName(i+1, 1), name)
	}

	for rowIdx, iv := range dayPlan.Timeline.Timeline {
		rowNum := rowIdx + 2
		f.SetCellValue(lineSheet, cellName(1, rowNum), iv.Start.Format("15:04"))
		f.SetCellValue(lineSheet, cellName(2, rowNum), iv.End.Format("15:04"))
		f.SetCellValue(lineSheet, cellName(3, rowNum), iv.DurationMinutes)
		f.SetCellValue(lineSheet, cellName(4, rowNum), iv.Name)
		if iv.Count > 0 {
			f.SetCellValue(lineSheet, cellName(5, rowNum), iv.Count)
			f.SetCellValue(lineSheet, cellName(6, rowNum), iv.WeightKg)
		}
	}

	totalsRow := len(dayPlan.Timeline.Timeline) + 3
	f.SetCellValue(lineSheet, cellName(1, totalsRow), "Celkem")
	f.SetCellValue(lineSheet, cellName(3, totalsRow), dayPlan.Timeline.Totals.TotalMinutes)
	f.SetCellValue(lineSheet, cellName(5, totalsRow), dayPlan.Timeline.Totals.TotalChickens)
	f.SetCellValue(lineSheet, cellName(6, totalsRow), dayPlan.Timeline.Totals.TotalWeightKg)
	f.SetCellStyle(lineSheet, "A1", cellName(len(lineHeaders), 1), headerStyle)

	for _, sheet := range []string{demandSheet, yieldSheet, lineSheet} {
		f.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			Split:       false,
			XSplit:      0,
			YSplit:      1,
			TopLeftCell: "A2",
		})
		f.SetColWidth(sheet, "A", "F", 15)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

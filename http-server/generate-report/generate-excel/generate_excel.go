package generate_excel

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"drubez-planner/internal/service/plan"
)

type GenerateExcelHandler interface {
	GenerateExcel(ctx context.Context, params plan.Params) ([]byte, error)
}

func GenerateReportExcel(log *slog.Logger, gen GenerateExcelHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.report.GenerateReportExcel"

		date := r.URL.Query().Get("date")
		if date == "" {
			date = time.Now().Format("2006-01-02")
		}
		if _, err := time.Parse("2006-01-02", date); err != nil {
			http.Error(w, "invalid date", http.StatusBadRequest)
			return
		}

		params := plan.Params{
			Date:      date,
			StartTime: r.URL.Query().Get("start_time"),
		}
		if speedStr := r.URL.Query().Get("line_speed"); speedStr != "" {
			speed, err := strconv.ParseFloat(speedStr, 64)
			if err != nil {
				http.Error(w, "invalid line_speed", http.StatusBadRequest)
				return
			}
			params.LineSpeedPerHour = speed
		}

		// На Excel времени побольше
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		excelBytes, err := gen.GenerateExcel(ctx, params)
		if err != nil {
			log.Error("failed to generate excel", "op", op, "err", err)
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		fileName := fmt.Sprintf("plan_%s.xlsx", date)

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
		w.Write(excelBytes)
	}
}

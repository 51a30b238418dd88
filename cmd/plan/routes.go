package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	getadmin "drubez-planner/http-server/admin/get"
	saveadmin "drubez-planner/http-server/admin/save"
	upadmin "drubez-planner/http-server/admin/update"
	calculate_plan "drubez-planner/http-server/calculate-plan"
	getflocks "drubez-planner/http-server/flocks/get"
	saveflocks "drubez-planner/http-server/flocks/save"
	generate_excel "drubez-planner/http-server/generate-report/generate-excel"
	getmaterials "drubez-planner/http-server/materials/get"
	getorders "drubez-planner/http-server/orders/get"
	saveorders "drubez-planner/http-server/orders/save"
	uporders "drubez-planner/http-server/orders/update"
	"drubez-planner/internal/config"
	"drubez-planner/internal/middleware/auth"
	generate_excel2 "drubez-planner/internal/service/generate-excel"
	"drubez-planner/internal/service/plan"
	"drubez-planner/internal/storage/mysql"
)

func routes(cfg config.Config, log *slog.Logger, storage *mysql.Storage, planService *plan.PlanService, genService *generate_excel2.GenerateExcelService) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8081", "http://localhost:5173"}, // фронтенд
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// Каталог материалов
	router.Get("/api/materials", getmaterials.GetMaterials(log, storage))

	// Заказы дня
	router.Get("/api/orders", getorders.GetOrdersByDate(log, storage))
	router.Post("/api/orders/save", saveorders.SaveOrder(log, storage))
	router.Post("/api/orders/done", uporders.UpdateItemDone(log, storage))

	// Стада и события линии
	router.Get("/api/flocks", getflocks.GetFlocks(log, storage))
	router.Post("/api/flocks/save", saveflocks.SaveFlocks(log, storage))
	router.Post("/api/events/save", saveflocks.SaveEvents(log, storage))

	// Расчёт дня: потребность + выход + таймлайн одним вызовом
	router.Post("/api/plan", calculate_plan.ComputeDayPlan(log, planService))

	// Ручная корректировка выхода
	router.Post("/api/yield/override", saveadmin.SaveYieldOverride(log, storage))

	// Генерация excel
	router.Get("/api/report/excel", generate_excel.GenerateReportExcel(log, genService))

	// adminPanel
	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))

	adminRouter.Get("/yield-settings", getadmin.GetYieldSettingsAdmin(log, storage))
	adminRouter.Put("/yield-settings/update", upadmin.UpdateYieldSettingsAdmin(log, storage))
	adminRouter.Get("/thigh-split", getadmin.GetThighSplitAdmin(log, storage))
	adminRouter.Put("/thigh-split/update", upadmin.UpdateThighSplitAdmin(log, storage))
	adminRouter.Get("/box-weights", getadmin.GetBoxWeightsAdmin(log, storage))
	adminRouter.Put("/box-weights/update", upadmin.UpdateBoxWeightAdmin(log, storage))
	adminRouter.Put("/materials/update", upadmin.UpdateMaterialAdmin(log, storage))

	router.Mount("/api/admin", adminRouter)

	// Статика, vue
	frontendDir := "./frontend-dist"
	if _, err := os.Stat(frontendDir); os.IsNotExist(err) {
		log.Warn("Папка фронтенда не найдена, отдаём только API", "path", frontendDir)
		return router
	}

	fileServer := http.StripPrefix("/", http.FileServer(http.Dir(frontendDir)))

	router.Handle("/assets/*", fileServer)
	router.Handle("/js/*", fileServer)
	router.Handle("/css/*", fileServer)
	router.Handle("/img/*", fileServer)

	// SPA fallback: любой другой путь → index.html
	router.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(frontendDir, r.URL.Path)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
		http.ServeFile(w, r, filepath.Join(frontendDir, "index.html"))
	})

	return router
}

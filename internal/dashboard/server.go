package dashboard

import (
	"bufio"
	"encoding/json"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/r-anthony-graves/taskWolf/internal/domain"
)

// StartServer serves charts over the NDJSON file the storage writer
// produced for the current run. Blocks until the listener fails.
func StartServer(dataFile string, port string) error {
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		entries := loadData(dataFile)

		// 1. Volume per hour of submission
		bar := charts.NewBar()
		bar.SetGlobalOptions(
			charts.WithTitleOpts(opts.Title{Title: "Entries per Hour"}),
			charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		)

		hourCounts := make(map[string]int)
		for _, e := range entries {
			hourCounts[hourOf(e)]++
		}

		hours := make([]string, 0, len(hourCounts))
		for h := range hourCounts {
			hours = append(hours, h)
		}
		sort.Strings(hours)

		var barY []opts.BarData
		for _, h := range hours {
			barY = append(barY, opts.BarData{Value: hourCounts[h]})
		}
		bar.SetXAxis(hours).AddSeries("Entries", barY)

		// 2. Volume per day
		pie := charts.NewPie()
		pie.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Entries per Day"}))

		dayCounts := make(map[string]int)
		for _, e := range entries {
			dayCounts[dayOf(e)]++
		}

		var pieItems []opts.PieData
		for k, v := range dayCounts {
			pieItems = append(pieItems, opts.PieData{Name: k, Value: v})
		}
		pie.AddSeries("Entries", pieItems)

		bar.Render(w)
		pie.Render(w)
	})

	return http.ListenAndServe(":"+port, nil)
}

func loadData(path string) []domain.Entry {
	f, _ := os.Open(path)
	defer f.Close()
	var entries []domain.Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e domain.Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func hourOf(e domain.Entry) string {
	t, err := time.Parse("2006-01-02T15:04:05", e.Timestamp)
	if err != nil {
		return "unknown"
	}
	return t.Format("15:00")
}

func dayOf(e domain.Entry) string {
	t, err := time.Parse("2006-01-02T15:04:05", e.Timestamp)
	if err != nil {
		return "unknown"
	}
	return t.Format("2006-01-02")
}

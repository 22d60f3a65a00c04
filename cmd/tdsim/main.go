// cmd/tdsim/main.go
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"tutti-frutti-td/internal/config"
	"tutti-frutti-td/internal/defs"
	"tutti-frutti-td/internal/scenario"
)

type summary struct {
	Scenario     string             `json:"scenario"`
	Runs         int                `json:"runs"`
	Failed       int                `json:"failed"`
	SurvivalRate float64            `json:"survivalRate"`
	AvgWaves     float64            `json:"avgWaves"`
	AvgPopped    float64            `json:"avgPopped"`
	AvgLivesLost float64            `json:"avgLivesLost"`
	BestWaves    int                `json:"bestWaves"`
	WavesCleared map[int]int        `json:"wavesCleared"` // сколько прогонов дошло до N волн
	Results      []*scenario.Result `json:"results,omitempty"`
}

func main() {
	var cfgPath, scenarioPath, out string
	var seed int64
	var n, workers int
	var keep bool
	flag.StringVar(&cfgPath, "config", "config/game.yaml", "settings file")
	flag.StringVar(&scenarioPath, "scenario", "scenarios/demo.yaml", "scenario file")
	flag.StringVar(&out, "out", "out.json", "output file (single) or summary file (batch)")
	flag.Int64Var(&seed, "seed", 0, "seed (0 - from the scenario)")
	flag.IntVar(&n, "n", 1, "number of simulations")
	flag.IntVar(&workers, "workers", 8, "parallel workers for batch runs")
	flag.BoolVar(&keep, "keep", false, "keep per-run results in the batch summary")
	flag.Parse()

	settings, err := config.LoadSettings(cfgPath)
	if err != nil {
		log.Printf("[Sim] Warning: %v (using defaults)", err)
		settings = config.DefaultSettings()
	}
	library, err := defs.LoadLibrary(settings.DataDir)
	if err != nil {
		log.Fatalf("[Sim] Failed to load definitions: %v", err)
	}
	sc, err := scenario.Load(scenarioPath)
	if err != nil {
		log.Fatalf("[Sim] %v", err)
	}
	if seed == 0 {
		seed = sc.Seed
	}

	if n <= 1 {
		res, err := scenario.Run(library, *settings, sc, seed)
		if err != nil {
			log.Fatalf("[Sim] %v", err)
		}
		writeJSON(out, res)
		fmt.Printf("Single run finished. Waves=%d, Lives=%d, GameOver=%v -> %s\n", res.WavesCleared, res.Lives, res.GameOver, out)
		return
	}

	st := summary{Scenario: sc.Name, Runs: n, WavesCleared: map[int]int{}}
	var survived, sumWaves, sumPopped, sumLost int
	var mu sync.Mutex
	wg := sync.WaitGroup{}
	jobs := make(chan int, n)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for i := range jobs {
				res, err := scenario.Run(library, *settings, sc, seed+int64(workerID)*7919+int64(i)+1)

				mu.Lock()
				if err != nil {
					log.Printf("[Sim] run %d: %v", i, err)
					st.Failed++
					mu.Unlock()
					continue
				}
				if !res.GameOver {
					survived++
				}
				sumWaves += res.WavesCleared
				sumPopped += res.Popped
				sumLost += res.LivesLost
				st.WavesCleared[res.WavesCleared]++
				if res.WavesCleared > st.BestWaves {
					st.BestWaves = res.WavesCleared
				}
				if keep {
					st.Results = append(st.Results, res)
				}
				mu.Unlock()
			}
		}(w)
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if done := n - st.Failed; done > 0 {
		st.SurvivalRate = float64(survived) / float64(done)
		st.AvgWaves = float64(sumWaves) / float64(done)
		st.AvgPopped = float64(sumPopped) / float64(done)
		st.AvgLivesLost = float64(sumLost) / float64(done)
	}
	writeJSON(out, st)
	fmt.Printf("Batch %d done -> %s\n", n, filepath.Base(out))
}

func writeJSON(path string, v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("[Sim] Failed to encode result: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Fatalf("[Sim] Failed to write %s: %v", path, err)
	}
}

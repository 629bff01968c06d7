package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

const (
	appPort = 8081
	benchDB = "bench.db"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "Duration of the test")
	rate := flag.Int("rate", 50, "Requests per second")
	writes := flag.Bool("writes", false, "Mix task creation into the read load")
	flag.Parse()

	fmt.Println("Building application...")
	buildCmd := exec.Command("go", "build", "-o", "bin/server", "./cmd/server")
	buildCmd.Stdout = os.Stdout
	buildCmd.Stderr = os.Stderr
	if err := buildCmd.Run(); err != nil {
		log.Fatalf("Failed to build app: %v", err)
	}

	fmt.Println("Starting application...")
	cmd := exec.Command("./bin/server")
	cmd.Env = append(os.Environ(),
		fmt.Sprintf("SERVER_PORT=%d", appPort),
		"STORE_DRIVER=sqlite3",
		fmt.Sprintf("STORE_URL=file:%s?_foreign_keys=on&_journal_mode=WAL", benchDB),
		"LOG_LEVEL=error",
		"RATE_LIMIT_ENABLED=false",
	)

	logFile, _ := os.Create("bench_server.log")
	defer logFile.Close()
	cmd.Stdout = logFile
	cmd.Stderr = logFile

	if err := cmd.Start(); err != nil {
		log.Fatalf("Failed to start app: %v", err)
	}
	defer func() {
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
		_ = os.Remove(benchDB)
	}()

	base := fmt.Sprintf("http://localhost:%d", appPort)
	waitForApp(base + "/health")

	clientID, projectID := seed(base)

	done := make(chan struct{})
	go monitorCPU(cmd.Process.Pid, done)

	targets := readTargets(base, clientID, projectID)
	if *writes {
		targets = append(targets, vegeta.Target{
			Method: http.MethodPost,
			URL:    base + "/tasks",
			Body:   []byte(fmt.Sprintf(`{"project_id":%d,"title":"bench","description":"load","status":"in_progress"}`, projectID)),
			Header: http.Header{"Content-Type": []string{"application/json"}},
		})
	}

	fmt.Printf("Running benchmark over %d endpoints: %s duration, %d req/s\n", len(targets), *duration, *rate)

	attacker := vegeta.NewAttacker(vegeta.KeepAlive(true))
	var metrics vegeta.Metrics

	for res := range attacker.Attack(vegeta.NewStaticTargeter(targets...), vegeta.Rate{Freq: *rate, Per: time.Second}, *duration, "Benchmark") {
		metrics.Add(res)
	}
	metrics.Close()
	close(done)

	fmt.Println("--------------------------------------------------")
	fmt.Println("99th percentile: ", metrics.Latencies.P99)
	fmt.Println("Mean:            ", metrics.Latencies.Mean)
	fmt.Println("Max:             ", metrics.Latencies.Max)
	fmt.Printf("Success:         %.2f%%\n", metrics.Success*100)
	fmt.Printf("Throughput:      %.2f req/s\n", metrics.Throughput)
	fmt.Println("--------------------------------------------------")

	if len(metrics.Errors) > 0 {
		fmt.Println("Error Set (first 5 unique):")

		uniqueErrors := make(map[string]bool)
		for _, msg := range metrics.Errors {
			if len(uniqueErrors) == 5 {
				break
			}
			if !uniqueErrors[msg] {
				fmt.Println(msg)
				uniqueErrors[msg] = true
			}
		}
	}
}

func readTargets(base string, clientID, projectID int64) []vegeta.Target {
	paths := []string{
		"/clients",
		"/clients/count",
		fmt.Sprintf("/clients/%d", clientID),
		"/projects",
		"/projects/recent",
		fmt.Sprintf("/projects/client/%d", clientID),
		"/tasks/overview",
		fmt.Sprintf("/tasks/project/%d", projectID),
	}

	targets := make([]vegeta.Target, 0, len(paths))
	for _, p := range paths {
		targets = append(targets, vegeta.Target{Method: http.MethodGet, URL: base + p})
	}
	return targets
}

// seed creates one client with one project so the read targets hit real rows.
func seed(base string) (int64, int64) {
	clientID := post(base+"/clients", map[string]interface{}{
		"name": "Bench Co", "email": "bench@example.com", "phone": "555-0000",
	})
	projectID := post(base+"/projects", map[string]interface{}{
		"client_id": clientID, "name": "Bench", "description": "benchmark fixture",
	})
	post(base+"/tasks", map[string]interface{}{
		"project_id": projectID, "title": "Seed", "description": "fixture", "status": "in_progress",
	})
	return clientID, projectID
}

func post(url string, body map[string]interface{}) int64 {
	payload, _ := json.Marshal(body)
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		log.Fatalf("Seed request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		log.Fatalf("Seed request to %s returned %d", url, resp.StatusCode)
	}

	var created struct {
		ID int64 `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		log.Fatalf("Failed to decode seed response: %v", err)
	}
	return created.ID
}

func monitorCPU(pid int, done chan struct{}) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	fmt.Println("\n--- Resource Usage (ps) ---")
	fmt.Printf("% -10s % -10s % -10s\n", "Time", "RSS(MB)", "CPU(%)")

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			out, err := exec.Command("ps", "-p", strconv.Itoa(pid), "-o", "rss=,%cpu=").Output()
			if err != nil {
				continue
			}
			fields := strings.Fields(string(out))
			if len(fields) < 2 {
				continue
			}
			rss, _ := strconv.ParseFloat(fields[0], 64)
			cpu, _ := strconv.ParseFloat(fields[1], 64)

			fmt.Printf("% -10s % -10.2f % -10.2f\n", time.Now().Format("15:04:05"), rss/1024, cpu)
		}
	}
}

func waitForApp(url string) {
	for i := 0; i < 20; i++ {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
	log.Fatal("App timed out")
}

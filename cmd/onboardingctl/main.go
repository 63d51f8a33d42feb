package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/fatih/color"
)

var (
	app       = kingpin.New("onboardingctl", "Inspect and drive the NextGen onboarding checklist")
	serverURL = app.Flag("server", "Server base URL").Default("http://localhost:3200").String()
	apiKey    = app.Flag("api-key", "API key (when the server requires one)").Envar("NEXTGEN_API_KEY").String()

	statusCmd = app.Command("status", "Show the onboarding task and checklist progress")

	ensureCmd = app.Command("ensure", "Create the onboarding task if it does not exist")

	toggleCmd        = app.Command("toggle", "Set a checklist item's completion")
	toggleItemID     = toggleCmd.Arg("item", "Checklist item id, e.g. checklist-1").Required().String()
	toggleIncomplete = toggleCmd.Flag("off", "Mark the item incomplete instead of complete").Bool()
)

type checklistItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type onboardingTask struct {
	ID             string          `json:"id"`
	DisplayID      string          `json:"taskId"`
	Kind           string          `json:"kind"`
	Name           string          `json:"name"`
	Status         string          `json:"status"`
	ChecklistItems []checklistItem `json:"checklistItems"`
}

type progress struct {
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
	Percent   int    `json:"percent"`
	State     string `json:"state"`
}

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	var err error
	switch command {
	case statusCmd.FullCommand():
		err = handleStatus()
	case ensureCmd.FullCommand():
		err = handleEnsure()
	case toggleCmd.FullCommand():
		err = handleToggle(*toggleItemID, !*toggleIncomplete)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func handleStatus() error {
	t, err := fetchOnboardingTask()
	if err != nil {
		return err
	}

	var p progress
	if err := request(http.MethodGet, "/api/onboarding/progress", nil, &p); err != nil {
		return err
	}

	bold := color.New(color.Bold)
	bold.Printf("%s  ", t.Name)
	fmt.Printf("[%s] %s\n\n", t.DisplayID, t.Status)

	for _, item := range t.ChecklistItems {
		if item.Completed {
			color.Green("  [x] %s  %s", item.ID, item.Text)
		} else {
			fmt.Printf("  [ ] %s  %s\n", item.ID, item.Text)
		}
	}

	fmt.Println()
	line := fmt.Sprintf("%d/%d steps complete (%d%%)", p.Completed, p.Total, p.Percent)
	switch p.State {
	case "complete":
		color.Green("%s", line)
	case "in_progress":
		color.Yellow("%s", line)
	default:
		fmt.Println(line)
	}
	return nil
}

func handleEnsure() error {
	var t onboardingTask
	if err := request(http.MethodPost, "/api/onboarding/ensure", nil, &t); err != nil {
		return err
	}
	color.Green("onboarding task ready: %s [%s]", t.Name, t.DisplayID)
	return nil
}

func handleToggle(itemID string, completed bool) error {
	t, err := fetchOnboardingTask()
	if err != nil {
		return err
	}
	body := map[string]bool{"completed": completed}
	var updated onboardingTask
	path := fmt.Sprintf("/api/tasks/%s/checklist/%s", t.ID, itemID)
	if err := request(http.MethodPost, path, body, &updated); err != nil {
		return err
	}
	state := "incomplete"
	if completed {
		state = "complete"
	}
	color.Green("marked %s %s", itemID, state)
	return nil
}

func fetchOnboardingTask() (*onboardingTask, error) {
	var tasks []onboardingTask
	if err := request(http.MethodGet, "/api/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].Kind == "onboarding" {
			return &tasks[i], nil
		}
	}
	return nil, fmt.Errorf("no onboarding task found, run 'onboardingctl ensure' first")
}

func request(method, path string, body, out any) error {
	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = &bytes.Buffer{}
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return err
		}
	} else {
		reqBody = bytes.NewBuffer(nil)
	}
	req, err := http.NewRequest(method, *serverURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if *apiKey != "" {
		req.Header.Set("X-API-Key", *apiKey)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Message != "" {
			return fmt.Errorf("%s (%s)", apiErr.Message, apiErr.Code)
		}
		return fmt.Errorf("server returned %s", resp.Status)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

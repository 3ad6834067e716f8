package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

func baseURL() string {
	if u := os.Getenv("CASEFILE_URL"); u != "" {
		return u
	}
	return "http://localhost:8080"
}

type brief struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Locations []string `json:"locations"`
	Suspects  []struct {
		Name string `json:"name"`
	} `json:"suspects"`
	Victim struct {
		KilledWhere string `json:"killed_where"`
		KilledWhen  string `json:"killed_when"`
	} `json:"victim"`
	GraphActive bool `json:"graph_active"`
}

// Plays one case end to end against a running server.
func main() {
	// Wait for server to start
	time.Sleep(2 * time.Second)

	fmt.Println("Starting smoke run against", baseURL())

	fmt.Println("1. Opening a case...")
	var b brief
	if !sendRequest(http.MethodPost, "/cases", nil, http.StatusCreated, &b) {
		fail("open case")
	}
	fmt.Printf("PASSED: opened %q (%s), graph active: %v\n", b.Title, b.ID, b.GraphActive)
	base := "/cases/" + b.ID

	fmt.Println("2. Searching the crime scene...")
	var search struct {
		Clues []map[string]string `json:"clues"`
	}
	if !sendRequest(http.MethodPost, base+"/search", map[string]string{"location": b.Victim.KilledWhere}, http.StatusOK, &search) {
		fail("search")
	}
	if b.GraphActive && len(search.Clues) == 0 {
		fail("search found nothing at the crime scene")
	}
	fmt.Printf("PASSED: %d clues\n", len(search.Clues))

	fmt.Println("3. Questioning witnesses...")
	var wits struct {
		Witnesses []map[string]string `json:"witnesses"`
	}
	payload := map[string]string{"location": b.Victim.KilledWhere, "time": b.Victim.KilledWhen}
	if !sendRequest(http.MethodPost, base+"/witnesses", payload, http.StatusOK, &wits) {
		fail("witnesses")
	}
	fmt.Printf("PASSED: %d witnesses\n", len(wits.Witnesses))

	fmt.Println("4. Asking for a hint...")
	if !sendRequest(http.MethodGet, base+"/hint", nil, http.StatusOK, nil) {
		fail("hint")
	}
	fmt.Println("PASSED: hint")

	fmt.Println("5. Accusing...")
	suspect := ""
	for _, w := range wits.Witnesses {
		if w["role"] != "Victim" {
			suspect = w["name"]
			break
		}
	}
	if suspect == "" && len(b.Suspects) > 0 {
		suspect = b.Suspects[0].Name
	}
	var res map[string]any
	if !sendRequest(http.MethodPost, base+"/accuse", map[string]string{"suspect": suspect}, http.StatusOK, &res) {
		fail("accuse")
	}
	fmt.Printf("PASSED: accused %s, correct: %v\n", suspect, res["correct"])

	if !sendRequest(http.MethodDelete, base, nil, http.StatusOK, nil) {
		fail("close case")
	}
	fmt.Println("PASSED: closed")
}

func fail(step string) {
	fmt.Println("FAILED:", step)
	os.Exit(1)
}

func sendRequest(method, endpoint string, payload any, want int, out any) bool {
	var body io.Reader
	if payload != nil {
		jsonBytes, _ := json.Marshal(payload)
		body = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequest(method, baseURL()+endpoint, body)
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 5 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return false
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != want {
		fmt.Printf("Request failed with status %d: %s\n", resp.StatusCode, string(respBody))
		return false
	}
	fmt.Printf("Response: %s\n", string(respBody))

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			fmt.Printf("Error decoding response: %v\n", err)
			return false
		}
	}
	return true
}

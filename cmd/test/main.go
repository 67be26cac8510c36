package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BerylCAtieno/nutrigen/internal/a2a"
	"github.com/BerylCAtieno/nutrigen/internal/navigation"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
)

const defaultQuestion = "Is brown rice healthier than white rice?"

type SmokeClient struct {
	baseURL string
	client  *http.Client
}

// NewSmokeClient keeps cookies so the page checks see a single session.
// Model calls can be slow, hence the generous timeout.
func NewSmokeClient(baseURL string) (*SmokeClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	return &SmokeClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Jar:     jar,
			Timeout: 2 * time.Minute,
		},
	}, nil
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of NutriGen")
	check := flag.String("test", "all", "Check to run: all, health, agent-card, pages, chatbot, custom")
	question := flag.String("question", "", "Nutrition question to ask (for custom check)")
	flag.Parse()

	sc, err := NewSmokeClient(*baseURL)
	if err != nil {
		printError(err.Error())
		os.Exit(1)
	}

	printHeader("NutriGen - Smoke Checks")
	fmt.Printf("%sBase URL: %s%s\n\n", colorCyan, sc.baseURL, colorReset)

	var ok bool
	switch *check {
	case "all":
		sc.runAll()
		return
	case "health":
		ok = sc.checkHealth()
	case "agent-card":
		ok = sc.checkAgentCard()
	case "pages":
		ok = sc.checkPages()
	case "chatbot":
		ok = sc.checkChatbot(defaultQuestion)
	case "custom":
		if strings.TrimSpace(*question) == "" {
			printError("A question is required for the custom check. Use -question flag")
			os.Exit(1)
		}
		ok = sc.checkChatbot(*question)
	default:
		printError(fmt.Sprintf("Unknown check: %s", *check))
		fmt.Println("\nAvailable checks: all, health, agent-card, pages, chatbot, custom")
		os.Exit(1)
	}
	if !ok {
		os.Exit(1)
	}
}

func (sc *SmokeClient) runAll() {
	checks := []struct {
		name string
		fn   func() bool
	}{
		{"Health", sc.checkHealth},
		{"Agent Card", sc.checkAgentCard},
		{"Pages", sc.checkPages},
		{"Chatbot", func() bool { return sc.checkChatbot(defaultQuestion) }},
	}

	var passed, failed int
	for _, c := range checks {
		if c.fn() {
			passed++
		} else {
			failed++
		}
		fmt.Println()
	}

	printHeader("Summary")
	fmt.Printf("%sPassed: %d%s\n", colorGreen, passed, colorReset)
	fmt.Printf("%sFailed: %d%s\n", colorRed, failed, colorReset)
	fmt.Printf("Total: %d\n", passed+failed)

	if failed > 0 {
		os.Exit(1)
	}
}

func (sc *SmokeClient) get(path string) (int, []byte, error) {
	fmt.Printf("GET %s%s\n", sc.baseURL, path)
	resp, err := sc.client.Get(sc.baseURL + path)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	return resp.StatusCode, body, err
}

func (sc *SmokeClient) checkHealth() bool {
	printCheckHeader("Health endpoint")

	status, body, err := sc.get("/health")
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK || string(body) != "OK" {
		printError(fmt.Sprintf("Expected 200 OK, got %d %q", status, body))
		return false
	}

	printSuccess("Health check passed")
	return true
}

func (sc *SmokeClient) checkAgentCard() bool {
	printCheckHeader("Agent card")

	status, body, err := sc.get("/.well-known/agent.json")
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		return false
	}

	var card map[string]json.RawMessage
	if err := json.Unmarshal(body, &card); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	for _, field := range []string{"name", "description", "version", "capabilities", "endpoints", "skills"} {
		if _, ok := card[field]; !ok {
			printError(fmt.Sprintf("Missing required field: %s", field))
			return false
		}
	}

	printSuccess("Agent card is valid")
	printJSON(body)
	return true
}

// checkPages walks the star-shaped navigation and confirms the session
// cookie carries the current page between requests.
func (sc *SmokeClient) checkPages() bool {
	printCheckHeader("Page navigation")

	steps := []struct {
		target navigation.Page
		marker string
	}{
		{navigation.Chatbot, "Ask the Nutrition Chatbot"},
		{navigation.Home, "Welcome to NutriGen"},
		{navigation.MealPlan, "Generate Personalized Meal Plan"},
		{navigation.Home, "Welcome to NutriGen"},
		{navigation.UploadImage, "Upload a Food Image"},
		{navigation.Home, "Welcome to NutriGen"},
	}

	for _, step := range steps {
		fmt.Printf("POST %s/navigate target=%q\n", sc.baseURL, step.target)
		resp, err := sc.client.PostForm(sc.baseURL+"/navigate", url.Values{"target": {step.target.String()}})
		if err != nil {
			printError(fmt.Sprintf("Request failed: %v", err))
			return false
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK || !bytes.Contains(body, []byte(step.marker)) {
			printError(fmt.Sprintf("Expected %q after navigating to %s (status %d)", step.marker, step.target, resp.StatusCode))
			return false
		}
	}

	printSuccess("Every page reachable from Home and back")
	return true
}

func (sc *SmokeClient) checkChatbot(question string) bool {
	printCheckHeader("Chatbot over A2A")

	endpoint := sc.baseURL + "/a2a/nutrition"
	fmt.Printf("POST %s\n", endpoint)
	fmt.Printf("%sQuestion:%s %s\n\n", colorCyan, colorReset, question)

	params, _ := json.Marshal(a2a.MessageParams{
		Message: a2a.A2AMessage{
			Kind:      "message",
			Role:      a2a.RoleUser,
			Parts:     []a2a.MessagePart{a2a.TextPart(question)},
			MessageID: uuid.NewString(),
		},
		Configuration: a2a.MessageConfiguration{
			Blocking:            true,
			AcceptedOutputModes: []string{"text"},
		},
	})
	request := a2a.JSONRPCRequest{
		JSONRPC: "2.0",
		ID:      json.RawMessage(fmt.Sprintf(`"smoke-%d"`, time.Now().Unix())),
		Method:  "message/send",
		Params:  params,
	}

	payload, _ := json.MarshalIndent(request, "", "  ")
	fmt.Printf("%sRequest:%s\n%s\n\n", colorYellow, colorReset, payload)

	resp, err := sc.client.Post(endpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		fmt.Printf("Response: %s\n", body)
		return false
	}

	var rpcResp a2a.JSONRPCResponse
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	if rpcResp.Error != nil {
		printError(fmt.Sprintf("JSON-RPC error %d: %s", rpcResp.Error.Code, rpcResp.Error.Message))
		return false
	}
	if rpcResp.Result == nil {
		printError("Response has neither result nor error")
		return false
	}

	if state := rpcResp.Result.Status.State; state != a2a.StateCompleted {
		printError(fmt.Sprintf("Expected state %q, got %q", a2a.StateCompleted, state))
		if msg := rpcResp.Result.Status.Message; msg != nil && len(msg.Parts) > 0 {
			fmt.Println(msg.Parts[0].Text)
		}
		return false
	}

	printSuccess("Chatbot answered")
	for _, art := range rpcResp.Result.Artifacts {
		fmt.Printf("\n%sArtifact %s:%s\n", colorPurple, art.ArtifactID, colorReset)
		fmt.Println(strings.Repeat("=", 80))
		for _, part := range art.Parts {
			fmt.Println(part.Text)
		}
		fmt.Println(strings.Repeat("=", 80))
	}
	return true
}

func printHeader(text string) {
	fmt.Printf("\n%s%s%s\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
	fmt.Printf("%s= %s =%s\n", colorBlue, text, colorReset)
	fmt.Printf("%s%s%s\n\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
}

func printCheckHeader(text string) {
	fmt.Printf("%s[CHECK] %s%s\n", colorCyan, text, colorReset)
	fmt.Println(strings.Repeat("-", 80))
}

func printSuccess(text string) {
	fmt.Printf("%s✓ %s%s\n", colorGreen, text, colorReset)
}

func printError(text string) {
	fmt.Printf("%s✗ %s%s\n", colorRed, text, colorReset)
}

func printJSON(data []byte) {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err == nil {
		fmt.Printf("\n%sResponse:%s\n%s\n", colorYellow, colorReset, pretty.String())
	}
}

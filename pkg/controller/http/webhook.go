package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strings"

	"github.com/MrArnoldPalmer/delivlib/pkg/domain/interfaces"
	"github.com/MrArnoldPalmer/delivlib/pkg/domain/model"
	"github.com/MrArnoldPalmer/delivlib/pkg/trigger"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// WebhookHandler evaluates GitHub webhooks against synthesized
// definitions
type WebhookHandler struct {
	secret    string
	evaluator interfaces.TriggerEvaluator
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(secret string, evaluator interfaces.TriggerEvaluator) *WebhookHandler {
	return &WebhookHandler{
		secret:    secret,
		evaluator: evaluator,
	}
}

// evaluationResponse is the JSON body returned for webhook deliveries.
// Ignored deliveries carry only Status and Event.
type evaluationResponse struct {
	Status     string                   `json:"status"`
	Event      string                   `json:"event"`
	Action     model.EventAction        `json:"action,omitempty"`
	Branch     string                   `json:"branch,omitempty"`
	BaseBranch string                   `json:"base_branch,omitempty"`
	Decisions  []*model.TriggerDecision `json:"decisions,omitempty"`
}

// Handle processes webhook requests
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	// Read payload
	body, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Error("Failed to read request body", "error", err)
		writeError(w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	// Verify signature
	signature := r.Header.Get("X-Hub-Signature-256")
	if !h.verifySignature(body, signature) {
		logger.Warn("Invalid webhook signature")
		writeError(w, goerr.New("invalid signature"), http.StatusUnauthorized)
		return
	}

	// Parse event using GitHub SDK
	eventType := r.Header.Get("X-GitHub-Event")
	payload, err := github.ParseWebHook(eventType, body)
	if err != nil {
		logger.Error("Failed to parse webhook payload", "error", err)
		writeError(w, goerr.Wrap(err, "invalid JSON payload"), http.StatusBadRequest)
		return
	}

	// Map the delivery to a trigger event. Deliveries outside the
	// build-source event set (tag pushes, closed pull requests, other
	// event types) are acknowledged but not evaluated.
	var (
		ev trigger.Event
		ok bool
	)
	switch e := payload.(type) {
	case *github.PushEvent:
		ev, ok = trigger.FromPushEvent(e)
	case *github.PullRequestEvent:
		ev, ok = trigger.FromPullRequestEvent(e)
	}

	if !ok {
		logger.Debug("Ignoring webhook delivery",
			"type", eventType,
			"delivery", r.Header.Get("X-GitHub-Delivery"),
		)
		writeJSON(w, http.StatusOK, &evaluationResponse{
			Status: "ignored",
			Event:  eventType,
		})
		return
	}

	// Evaluate against synthesized definitions
	decisions, err := h.evaluator.EvaluateEvent(ctx, ev)
	if err != nil {
		logger.Error("Failed to evaluate webhook event", "error", err)
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, &evaluationResponse{
		Status:     "evaluated",
		Event:      eventType,
		Action:     ev.Action,
		Branch:     ev.Branch,
		BaseBranch: ev.BaseBranch,
		Decisions:  decisions,
	})
}

// verifySignature verifies the webhook signature
func (h *WebhookHandler) verifySignature(payload []byte, signature string) bool {
	if signature == "" {
		return false
	}

	// Remove "sha256=" prefix if present
	signature = strings.TrimPrefix(signature, "sha256=")

	// Calculate HMAC-SHA256
	mac := hmac.New(sha256.New, []byte(h.secret))
	mac.Write(payload)
	expectedMAC := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(signature), []byte(expectedMAC))
}

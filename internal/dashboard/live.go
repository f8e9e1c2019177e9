package dashboard

import (
	"fmt"
	"strings"
)

// Recommendation is the advisory shown on the Live Operations page.
type Recommendation struct {
	TrainID  string `json:"trainId"`
	Train    string `json:"train"`
	Location string `json:"location"`
	Minutes  int    `json:"minutes"`
	Reason   string `json:"reason"`
}

func (rec Recommendation) Summary() string {
	return fmt.Sprintf("Hold Train %s at %s for %d minutes.", rec.Train, rec.Location, rec.Minutes)
}

func LiveRecommendation() Recommendation {
	return Recommendation{
		TrainID:  "45678",
		Train:    "45678 (Freight)",
		Location: "Siding SL-02",
		Minutes:  6,
		Reason:   "To allow high-priority Train 12301 (Rajdhani) to pass, preventing a projected 15-minute delay.",
	}
}

type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

func ParseDecision(raw string) (Decision, error) {
	switch Decision(strings.ToLower(strings.TrimSpace(raw))) {
	case DecisionAccept:
		return DecisionAccept, nil
	case DecisionReject:
		return DecisionReject, nil
	}
	return "", fmt.Errorf("unknown decision %q", raw)
}

// Notice is the transient acknowledgement for a decision. Nothing else happens.
func (decision Decision) Notice() string {
	if decision == DecisionAccept {
		return "✅ Recommendation Accepted! Executing action."
	}
	return "❌ Recommendation Rejected. Awaiting manual override."
}

func ManualActions() []string {
	return []string{"Proceed Via Main Line", "Hold at Next Station", "Route to Siding"}
}

// ManualCommand is accepted as-is: an empty TrainID is still "sent".
type ManualCommand struct {
	TrainID string
	Action  string
}

const ManualCommandNotice = "Manual command sent successfully!"

// Metric is a headline number with an optional delta, as rendered on metric cards.
type Metric struct {
	Label   string `json:"label"`
	Value   string `json:"value"`
	Delta   string `json:"delta,omitempty"`
	Inverse bool   `json:"inverse,omitempty"`
	Help    string `json:"help,omitempty"`
}

func LiveHeadline() []Metric {
	return []Metric{
		{Label: "Status", Value: "● LIVE", Help: "Real-time data feed is active."},
		{Label: "Punctuality", Value: "94.2%", Delta: "0.2%", Help: "Percentage of trains on time."},
		{Label: "Avg. Delay", Value: "2.8m", Delta: "-0.1m", Inverse: true, Help: "Average delay across all trains in the section."},
	}
}

type Tone string

const (
	ToneGood    Tone = "good"
	ToneBad     Tone = "bad"
	ToneNeutral Tone = "neutral"
)

// DeltaTone colours a delta: a leading "-" reads as a decrease. Inverse metrics
// (delays) treat a decrease as good.
func DeltaTone(delta string, inverse bool) Tone {
	delta = strings.TrimSpace(delta)
	if delta == "" {
		return ToneNeutral
	}
	down := strings.HasPrefix(delta, "-")
	if down == inverse {
		return ToneGood
	}
	return ToneBad
}

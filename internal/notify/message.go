package notify

import (
	"strconv"

	"github.com/hyperifyio/aptwatch/internal/scrape"
)

const (
	// MaxEmbedsPerMessage is the webhook platform's cap on embeds per message.
	MaxEmbedsPerMessage = 10
	// AlertContent is the plain-text body sent alongside the embeds.
	AlertContent = "@everyone Found availabilities"

	colorGreen = 0x2ecc71
)

// Message is one webhook execution payload.
type Message struct {
	Content         string          `json:"content"`
	AllowedMentions AllowedMentions `json:"allowed_mentions"`
	Embeds          []Embed         `json:"embeds"`
}

type AllowedMentions struct {
	Parse []string `json:"parse"`
}

// Embed renders one floor plan.
type Embed struct {
	Color     int        `json:"color"`
	Thumbnail *Thumbnail `json:"thumbnail,omitempty"`
	Footer    *Footer    `json:"footer,omitempty"`
	Fields    []Field    `json:"fields"`
}

type Thumbnail struct {
	URL string `json:"url"`
}

type Footer struct {
	Text string `json:"text"`
}

type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// Chunk splits plans into consecutive batches of at most n.
func Chunk(plans []scrape.FloorPlan, n int) [][]scrape.FloorPlan {
	if n <= 0 {
		n = MaxEmbedsPerMessage
	}
	var out [][]scrape.FloorPlan
	for i := 0; i < len(plans); i += n {
		end := i + n
		if end > len(plans) {
			end = len(plans)
		}
		out = append(out, plans[i:end])
	}
	return out
}

// BuildMessages turns plans into messages of at most MaxEmbedsPerMessage
// embeds each, every embed footed with sourceURL.
func BuildMessages(plans []scrape.FloorPlan, sourceURL string) []Message {
	batches := Chunk(plans, MaxEmbedsPerMessage)
	out := make([]Message, 0, len(batches))
	for _, batch := range batches {
		msg := Message{
			Content:         AlertContent,
			AllowedMentions: AllowedMentions{Parse: []string{"everyone"}},
			Embeds:          make([]Embed, 0, len(batch)),
		}
		for _, fp := range batch {
			msg.Embeds = append(msg.Embeds, embedFor(fp, sourceURL))
		}
		out = append(out, msg)
	}
	return out
}

func embedFor(fp scrape.FloorPlan, sourceURL string) Embed {
	return Embed{
		Color:     colorGreen,
		Thumbnail: &Thumbnail{URL: fp.LayoutImageURL},
		Footer:    &Footer{Text: sourceURL},
		Fields: []Field{
			{Name: "Layout", Value: fp.PlanLabel, Inline: true},
			{Name: "Sq Ft", Value: strconv.Itoa(fp.SquareFeet), Inline: true},
			{Name: "Rent", Value: fp.Rent, Inline: true},
			{Name: "Available", Value: strconv.Itoa(fp.Availability), Inline: true},
		},
	}
}

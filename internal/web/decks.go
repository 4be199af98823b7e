package web

import (
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/peterkuimelis/clasher/internal/game"
)

// DeckInfo is the JSON representation of a deck for the /api/decks endpoint.
type DeckInfo struct {
	Number  int      `json:"number"`
	Name    string   `json:"name"`
	Cards   []string `json:"cards"`
	AvgCost float64  `json:"avgCost"`
}

// deckInfos lists the decks of a deck file with repeated cards expanded.
// Unknown card names are reported, not skipped.
func deckInfos(data []byte, catalog *game.Catalog) ([]DeckInfo, error) {
	df, err := game.ParseDeckYAML(data)
	if err != nil {
		return nil, err
	}

	decks := make([]DeckInfo, 0, len(df.Decks))
	for i, d := range df.Decks {
		cards, err := d.Resolve(catalog)
		if err != nil {
			return nil, err
		}
		di := DeckInfo{Number: i + 1, Name: d.Name, Cards: make([]string, 0, len(cards))}
		total := 0
		for _, c := range cards {
			di.Cards = append(di.Cards, c.Name)
			total += c.Cost
		}
		if len(cards) > 0 {
			di.AvgCost = round1(float64(total) / float64(len(cards)))
		}
		decks = append(decks, di)
	}
	return decks, nil
}

func (s *Server) handleDecks(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(s.decksFile)
	if err != nil {
		s.logger.Warn("read decks file", zap.String("path", s.decksFile), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not read decks file")
		return
	}
	decks, err := deckInfos(data, s.catalog)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, decks)
}

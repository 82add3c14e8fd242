package handlers

import (
	"encoding/csv"
	"log"
	"net/http"
	"strconv"

	"github.com/xavierca1/landing-leads/internal/entity"
)

var leadCSVHeader = []string{"ID", "Nome", "Email", "Tempo na Página", "Página", "IP", "Data Criação", "Processado"}

const csvDateLayout = "2006-01-02 15:04:05"

// writeLeadsCSV streams leads as an attachment. Headers are already sent when a
// row fails, so write errors are only logged.
func writeLeadsCSV(w http.ResponseWriter, filename string, leads []entity.Lead) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	if err := cw.Write(leadCSVHeader); err != nil {
		log.Printf("❌ Erro ao escrever CSV: %v", err)
		return
	}

	for _, lead := range leads {
		if err := cw.Write(leadCSVRecord(lead)); err != nil {
			log.Printf("❌ Erro ao escrever CSV: %v", err)
			return
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		log.Printf("❌ Erro ao finalizar CSV: %v", err)
	}
}

func leadCSVRecord(lead entity.Lead) []string {
	processed := "Não"
	if lead.IsProcessed {
		processed = "Sim"
	}

	return []string{
		strconv.FormatInt(lead.ID, 10),
		lead.Name,
		lead.Email,
		strconv.Itoa(lead.TimeOnPage),
		lead.PageURL,
		lead.IPAddress,
		lead.CreatedAt.Format(csvDateLayout),
		processed,
	}
}

package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/omarshaarawi/flickerreport/internal/service"
)

type Handler struct {
	reportService *service.ReportService
}

func NewHandler(reportService *service.ReportService) *Handler {
	return &Handler{reportService: reportService}
}

func (h *Handler) HandleCommand(update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	msg.ParseMode = "Markdown"

	switch command {
	case "start":
		msg.Text = "Welcome! Use /help to see available commands."
	case "help":
		msg.Text = helpText()
	case "report":
		h.handleReport(&msg)
	case "standings":
		h.handleStandings(&msg)
	case "matchups":
		h.handleMatchups(&msg)
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}

	return msg
}

func (h *Handler) handleReport(msg *tgbotapi.MessageConfig) {
	rendered, err := h.reportService.GetReport()
	if err != nil {
		msg.Text = fmt.Sprintf("Error generating report: %v", err)
	} else {
		msg.Text = rendered
	}
}

func (h *Handler) handleStandings(msg *tgbotapi.MessageConfig) {
	standings, err := h.reportService.GetStandings()
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching standings: %v", err)
	} else {
		msg.Text = standings
	}
}

func (h *Handler) handleMatchups(msg *tgbotapi.MessageConfig) {
	matchups, err := h.reportService.GetMatchups()
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching matchups: %v", err)
	} else {
		msg.Text = matchups
	}
}

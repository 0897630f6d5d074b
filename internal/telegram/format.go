package telegram

import (
	"fmt"
	"strings"
	"time"

	"day-planner/internal/app"
	"day-planner/internal/metrics"
	"day-planner/internal/planner"
	"day-planner/internal/session"

	"github.com/dustin/go-humanize"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const helpText = `🎯 *ActivityCity*
Plan and book your perfect day out in seconds.

/plan type=combo vibe=fun food=vegan avoid=Dairy,Soy people=4 day=2026-10-20 time=18:30
/invite <email or phone> - ask a friend for their preferences
/friends on|off - include friends' preferences in results
/group - plan the best match for your group
/reset - clear friends and preferences`

func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}

// markdownBold turns **bold** segments into Telegram Markdown while escaping
// everything else.
func markdownBold(s string) string {
	parts := strings.Split(s, "**")
	for i := range parts {
		parts[i] = escape(parts[i])
	}
	return strings.Join(parts, "*")
}

func formatHome(v app.HomeView) (string, *tgbotapi.InlineKeyboardMarkup) {
	var sb strings.Builder
	if v.Flash != "" {
		sb.WriteString("🎉 " + escape(v.Flash) + "\n\n")
	}

	if v.Featured == nil {
		sb.WriteString(escape(v.Message))
		return sb.String(), nil
	}

	featured := v.Cards[0]
	sb.WriteString("🔥 *Your Featured Match*\n")
	sb.WriteString(fmt.Sprintf("*%s*\n%d%% match · %s %.1f\n%s\n",
		escape(featured.Title()), featured.Match, featured.Stars, featured.Rating, markdownBold(featured.Reasoning)))
	if featured.WalkMinutes > 0 {
		sb.WriteString(fmt.Sprintf("🚶 %d min walk\n", featured.WalkMinutes))
	}

	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Book featured", fmt.Sprintf("book|%d", session.FeaturedIndex)),
		),
	}

	if more := v.Cards[1:]; len(more) > 0 {
		sb.WriteString("\n✨ *Explore More*\n")
		for i, card := range more {
			sb.WriteString(fmt.Sprintf("%d. %s (%d%% match · %s)\n", i+1, escape(card.Title()), card.Match, card.Stars))
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("Book #%d", i+1), fmt.Sprintf("book|%d", i)),
			))
		}
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return sb.String(), &kb
}

func formatCheckout(v session.CheckoutView, now time.Time) (string, *tgbotapi.InlineKeyboardMarkup) {
	var sb strings.Builder
	sb.WriteString("🛒 *Booking Details*\nPlease confirm your booking details below.\n\n")
	sb.WriteString(escape(v.Heading) + "\n")

	day := v.Day
	if d, err := time.ParseInLocation("2006-01-02", v.Day, now.Location()); err == nil {
		day = fmt.Sprintf("%s (%s)", v.Day, relativeDay(d, now))
	}
	sb.WriteString("Date: " + day + "\n")
	if v.Time != "" {
		sb.WriteString("Time: " + v.Time + "\n")
	}
	sb.WriteString(fmt.Sprintf("People: %d\n", v.People))
	sb.WriteString("\n_" + escape(app.Disclaimer) + "_")

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Confirm Booking", "confirm|"),
			tgbotapi.NewInlineKeyboardButtonData("← Back to Search", "back|"),
		),
	)
	return sb.String(), &kb
}

func relativeDay(d, now time.Time) string {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if d.Equal(today) {
		return "today"
	}
	return humanize.RelTime(d, today, "ago", "from now")
}

func formatFriends(s *session.Session) string {
	if len(s.Friends) == 0 {
		return "No friends invited yet."
	}
	var sb strings.Builder
	sb.WriteString("Invited Friends: " + escape(strings.Join(s.Friends, ", ")) + "\n")
	for _, fp := range s.FriendPrefs {
		sb.WriteString("• " + escape(fp.Describe()) + "\n")
	}
	if s.IncludeFriends {
		sb.WriteString("✅ Friends' preferences are included in results.")
	} else {
		sb.WriteString("Friends' preferences are not included in results.")
	}
	return sb.String()
}

func formatBestMatch(p *planner.Plan) (string, *tgbotapi.InlineKeyboardMarkup) {
	text := fmt.Sprintf("✨ *Your Group's Perfect Day*\nBased on everyone's preferences, here's what we think you'll love:\n\n*Activity:* %s\n*Restaurant:* %s",
		escape(p.Activity), escape(p.Restaurant))
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Confirm & Book", "group|"),
		),
	)
	return text, &kb
}

func formatUsageReport(usage []metrics.DailyUsage, health metrics.SysHealth) string {
	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")

	sb.WriteString("🗓 *Recent Plans*\n")
	if len(usage) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range usage {
		sb.WriteString(fmt.Sprintf("• *%s*: %d plans, %.0f%% matched, avg %s\n",
			d.Date, d.Plans, d.MatchRate()*100, d.AvgLatency))
	}

	sb.WriteString("\n🧠 *System Health*\n")
	sb.WriteString(fmt.Sprintf("• RAM: %s (Alloc) / %s (Sys)\n", health.Alloc, health.Sys))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Disk Data: %s\n", health.DataDiskSize))
	return sb.String()
}

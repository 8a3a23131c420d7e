// Package telegram lets players solve rounds over a Telegram bot: /new
// deals a round, the player answers by typing a flat expression built
// from the round's tiles, and the same win predicate as the web API
// decides the outcome.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"svw.info/mathtiles/internal/domain"
	"svw.info/mathtiles/internal/evaluator"
	"svw.info/mathtiles/internal/infrastructure/storage"
	"svw.info/mathtiles/internal/usecase"
)

const (
	cmdStart = "start"
	cmdNew   = "new"
	cmdHint  = "hint"
	cmdStat  = "stat"
	cmdHelp  = "help"
)

// Bot serves one current round per chat. Private chats only, so the chat
// id doubles as the user id.
type Bot struct {
	api      *tgbotapi.BotAPI
	svc      *usecase.Service
	stats    *storage.StatsDB
	logger   *slog.Logger
	defaultK int
	rounds   map[int64]*domain.Round
}

// New connects the bot. stats may be nil when no scoreboard is wanted.
func New(token string, svc *usecase.Service, stats *storage.StatsDB, logger *slog.Logger, defaultK int) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: connect: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if defaultK < 2 {
		defaultK = 3
	}
	return &Bot{
		api:      api,
		svc:      svc,
		stats:    stats,
		logger:   logger,
		defaultK: defaultK,
		rounds:   make(map[int64]*domain.Round),
	}, nil
}

// Start polls for updates until the context is cancelled.
func (b *Bot) Start(ctx context.Context) {
	b.logger.Info("telegram bot polling", "user", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message != nil {
				b.handleMessage(ctx, update.Message)
			}
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)
	b.logger.Debug("message", "chat", chatID, "text", text)

	switch {
	case strings.HasPrefix(text, "/"+cmdStart):
		b.send(chatID, welcomeText)
		b.dealRound(ctx, chatID, b.defaultK)
	case strings.HasPrefix(text, "/"+cmdNew):
		k := b.defaultK
		if fields := strings.Fields(text); len(fields) > 1 {
			if n, err := strconv.Atoi(fields[1]); err == nil && n >= 2 {
				k = n
			}
		}
		b.dealRound(ctx, chatID, k)
	case strings.HasPrefix(text, "/"+cmdHint):
		b.sendHint(ctx, chatID)
	case strings.HasPrefix(text, "/"+cmdStat):
		b.sendStats(ctx, chatID)
	case strings.HasPrefix(text, "/"+cmdHelp):
		b.send(chatID, helpText)
	case strings.HasPrefix(text, "/"):
		b.send(chatID, "Unknown command. Try /new for a puzzle or /help.")
	default:
		b.handleAnswer(ctx, chatID, text)
	}
}

const welcomeText = `Welcome to mathtiles!

I deal you number tiles and a target. Combine every tile with + - * /
(no parentheses, standard precedence) to hit the target exactly.

/new [k] - deal a new round with k tiles (default 3)
/hint - reveal one known solution
/stat - your win/loss record
/help - how to answer`

const helpText = `Answer by typing a flat expression that uses each of
your tiles exactly once, e.g. 2+3*4. Multiplication and division bind
before addition and subtraction; there are no parentheses. Any
expression that reaches the target wins, not just the stored one.`

func (b *Bot) dealRound(ctx context.Context, chatID int64, k int) {
	round, _, err := b.svc.Generate(ctx, 0, k)
	if err != nil {
		b.logger.Warn("generate failed", "chat", chatID, "k", k, "err", err)
		b.send(chatID, "I couldn't deal a round for that tile count. Try /new 3.")
		return
	}
	b.rounds[chatID] = round

	vals := make([]string, len(round.Numbers))
	for i, tile := range round.Numbers {
		vals[i] = strconv.Itoa(tile.Value)
	}
	b.send(chatID, fmt.Sprintf("Target: %d\nTiles: %s\nType an expression using every tile once.",
		round.Target, strings.Join(vals, "  ")))
}

func (b *Bot) sendHint(ctx context.Context, chatID int64) {
	round, ok := b.rounds[chatID]
	if !ok {
		b.send(chatID, "No round in play. /new deals one.")
		return
	}
	h, found, err := b.svc.Hint(ctx, round)
	if err != nil || !found {
		b.send(chatID, "No hint available for this round.")
		return
	}
	b.send(chatID, "One known solution: "+h.Expression)
}

func (b *Bot) sendStats(ctx context.Context, chatID int64) {
	if b.stats == nil {
		b.send(chatID, "No scoreboard configured.")
		return
	}
	wins, losses, err := b.stats.UserStats(ctx, chatID)
	if err != nil {
		b.logger.Warn("stats failed", "chat", chatID, "err", err)
		b.send(chatID, "Couldn't fetch your statistics right now.")
		return
	}
	b.send(chatID, fmt.Sprintf("Solved: %d\nMissed: %d", wins, losses))
}

func (b *Bot) handleAnswer(ctx context.Context, chatID int64, text string) {
	round, ok := b.rounds[chatID]
	if !ok {
		b.send(chatID, "No round in play. /new deals one.")
		return
	}

	expr := strings.ReplaceAll(text, " ", "")
	nums, ops, err := evaluator.Tokenize(expr)
	if err != nil {
		b.send(chatID, "I couldn't read that. Type a flat expression like 2+3*4.")
		return
	}
	if !sameMultiset(nums, round.Values()) {
		b.send(chatID, "Use each of your tiles exactly once: "+tileList(round))
		return
	}

	win, value, err := b.svc.Check(ctx, nums, ops, round.Target)
	if err != nil {
		b.send(chatID, "I couldn't evaluate that. Try again.")
		return
	}
	if b.stats != nil {
		if err := b.stats.RecordAttempt(ctx, chatID, round.K, round.Target, expr, win); err != nil {
			b.logger.Warn("record attempt failed", "chat", chatID, "err", err)
		}
	}
	if win {
		// Solved is terminal for the round; the next answer needs /new.
		delete(b.rounds, chatID)
		b.send(chatID, fmt.Sprintf("Correct! %s = %d. /new deals another round.", expr, round.Target))
		return
	}
	if value == "" {
		b.send(chatID, "That divides by zero, so it can't reach the target. Try again.")
		return
	}
	b.send(chatID, fmt.Sprintf("%s = %s, not %d. Try again or /hint.", expr, value, round.Target))
}

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Warn("send failed", "chat", chatID, "err", err)
	}
}

func tileList(r *domain.Round) string {
	vals := make([]string, len(r.Numbers))
	for i, tile := range r.Numbers {
		vals[i] = strconv.Itoa(tile.Value)
	}
	return strings.Join(vals, "  ")
}

// sameMultiset reports whether a and b hold the same values with the same
// multiplicities, in any order.
func sameMultiset(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]int(nil), a...)
	bs := append([]int(nil), b...)
	sort.Ints(as)
	sort.Ints(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

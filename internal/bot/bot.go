package bot

import (
	"context"
	"log/slog"
	"strings"

	"account-shop/internal/infra/rates"
	"account-shop/internal/pkg/config"
	"account-shop/internal/usecase/commands"
	"account-shop/internal/usecase/queries"

	"github.com/bwmarrin/discordgo"
)

// Bot is the single package that touches the Discord SDK. Everything it does
// funnels into usecase commands/queries; it owns no business state of its own.
type Bot struct {
	session  *discordgo.Session
	cfg      config.Config
	purchase commands.PurchaseCommands
	approval commands.ApprovalCommands
	stock    queries.StockQueries
	orders   queries.OrderQueries
	importer commands.InventoryCommands
	rates    *rates.Client
	logger   *slog.Logger
}

func New(
	cfg config.Config,
	purchase commands.PurchaseCommands,
	approval commands.ApprovalCommands,
	stock queries.StockQueries,
	orders queries.OrderQueries,
	importer commands.InventoryCommands,
	ratesClient *rates.Client,
	logger *slog.Logger,
) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return nil, err
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages

	b := &Bot{
		session:  session,
		cfg:      cfg,
		purchase: purchase,
		approval: approval,
		stock:    stock,
		orders:   orders,
		importer: importer,
		rates:    ratesClient,
		logger:   logger,
	}
	session.AddHandler(b.onReady)
	session.AddHandler(b.onInteraction)

	return b, nil
}

func (b *Bot) Start(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return err
	}
	if err := b.registerCommands(); err != nil {
		return err
	}
	b.logger.Info("🤖 Discord ボットを起動しました", "guild_id", b.cfg.Discord.GuildID)
	return nil
}

func (b *Bot) Stop(ctx context.Context) error {
	b.logger.Info("Discord ボットを停止します")
	return b.session.Close()
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.logger.Info("Discord gateway ready", "username", r.User.Username)
}

func (b *Bot) registerCommands() error {
	cmds := []*discordgo.ApplicationCommand{
		{
			Name:        "setup_shop",
			Description: "Post the shop panel in this channel (admin only)",
		},
		{
			Name:        "shop",
			Description: "Show the shop panel",
		},
		{
			Name:        "orders",
			Description: "Show your recent orders",
		},
		{
			Name:        "stats",
			Description: "Show inventory statistics (admin only)",
		},
		{
			Name:        "add_accounts",
			Description: "Import accounts as comma-separated email:password pairs (admin only)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "accounts",
					Description: "email:pass,email:pass,...",
					Required:    true,
				},
			},
		},
	}

	_, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, b.cfg.Discord.GuildID, cmds)
	return err
}

// onInteraction is the single dispatch point. Custom IDs are namespaced with
// a colon-separated prefix so each component routes without global state.
func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		switch i.ApplicationCommandData().Name {
		case "setup_shop":
			b.handleSetupShop(ctx, s, i)
		case "shop":
			b.handleShop(ctx, s, i)
		case "orders":
			b.handleOrders(ctx, s, i)
		case "stats":
			b.handleStats(ctx, s, i)
		case "add_accounts":
			b.handleAddAccounts(ctx, s, i)
		}

	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		switch {
		case strings.HasPrefix(customID, "shop:buy:"):
			b.handleBuyButton(ctx, s, i, strings.TrimPrefix(customID, "shop:buy:"))
		case strings.HasPrefix(customID, "order:approve:"):
			b.handleApprove(ctx, s, i, strings.TrimPrefix(customID, "order:approve:"))
		case strings.HasPrefix(customID, "order:reject:"):
			b.handleRejectButton(ctx, s, i, strings.TrimPrefix(customID, "order:reject:"))
		case customID == "ticket:close":
			b.handleTicketClose(ctx, s, i)
		}

	case discordgo.InteractionModalSubmit:
		customID := i.ModalSubmitData().CustomID
		switch {
		case strings.HasPrefix(customID, "giftcard:"):
			b.handleGiftCardSubmit(ctx, s, i, strings.TrimPrefix(customID, "giftcard:"))
		case strings.HasPrefix(customID, "reject:"):
			b.handleRejectSubmit(ctx, s, i, strings.TrimPrefix(customID, "reject:"))
		}
	}
}

// interactionUser works for both guild interactions (Member set) and DMs.
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}

func (b *Bot) isAdmin(i *discordgo.InteractionCreate) bool {
	u := interactionUser(i)
	return u != nil && u.ID == b.cfg.Discord.AdminUserID
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		slog.Error("failed to respond to interaction", "error", err)
	}
}

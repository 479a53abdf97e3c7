package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"account-shop/internal/usecase/commands"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) handleStats(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.isAdmin(i) {
		respondEphemeral(s, i, emojiCross+" Operator only.")
		return
	}

	view, err := b.stock.Current(ctx)
	if err != nil {
		b.logger.Error("failed to load stock stats", "error", err)
		respondEphemeral(s, i, emojiCross+" Failed to load stats.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: emojiBox + " Inventory",
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Total", Value: fmt.Sprintf("%d", view.Total), Inline: true},
			{Name: "Available", Value: fmt.Sprintf("%d", view.Available), Inline: true},
			{Name: "Reserved", Value: fmt.Sprintf("%d", view.Reserved), Inline: true},
			{Name: "Sold", Value: fmt.Sprintf("%d", view.Consumed), Inline: true},
		},
		Color: 0x5865F2,
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		b.logger.Error("failed to respond with stats", "error", err)
	}
}

func (b *Bot) handleAddAccounts(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.isAdmin(i) {
		respondEphemeral(s, i, emojiCross+" Operator only.")
		return
	}

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		respondEphemeral(s, i, emojiCross+" Nothing to import.")
		return
	}
	raw := options[0].StringValue()

	result, err := b.importer.ImportAccounts(ctx, raw)
	if err != nil {
		if errors.Is(err, commands.ErrNothingToImport) {
			respondEphemeral(s, i, emojiCross+" Nothing to import.")
			return
		}
		b.logger.Error("account import failed", "error", err)
		respondEphemeral(s, i, emojiCross+" Import failed; nothing was added.")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, emojiTick+" Imported **%d** accounts.", result.Imported)
	if len(result.Duplicates) > 0 {
		fmt.Fprintf(&sb, "\nSkipped %d duplicates: %s", len(result.Duplicates), strings.Join(result.Duplicates, ", "))
	}
	for _, rej := range result.Rejected {
		fmt.Fprintf(&sb, "\n"+emojiCross+" `%s`: %s", rej.Pair, rej.Reason)
	}
	respondEphemeral(s, i, sb.String())
}

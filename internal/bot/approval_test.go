//go:build unit

package bot

import (
	"testing"

	"account-shop/internal/domain/giftcard"
	"account-shop/internal/usecase/commands"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApprovalRequestEmbed(t *testing.T) {
	result := &commands.PurchaseResult{
		OrderID:         uuid.New(),
		Quantity:        5,
		TotalPriceCents: 250,
		CardType:        giftcard.TypeAmazon,
		CardCode:        "AMZN9876TESTCODE42",
		ReservedCount:   5,
	}
	buyer := &discordgo.User{ID: "200000000000000001", Username: "buyer"}

	embed := approvalRequestEmbed(result, buyer)

	fields := make(map[string]string, len(embed.Fields))
	for _, f := range embed.Fields {
		fields[f.Name] = f.Value
	}

	// 手動照合に必要な情報が全部載っていること。特にコード本体
	assert.Contains(t, fields["Card code"], "AMZN9876TESTCODE42")
	assert.Equal(t, "Amazon", fields["Card type"])
	assert.Equal(t, "$2.50", fields["Total"])
	assert.Equal(t, result.OrderID.String(), fields["Order"])
	assert.Contains(t, fields["Buyer"], "200000000000000001")
}

func TestFinalizeApprovalEmbeds(t *testing.T) {
	t.Run("stamps status and color onto the first embed", func(t *testing.T) {
		embeds := []*discordgo.MessageEmbed{{Color: 0xFEE75C}}

		out := finalizeApprovalEmbeds(embeds, "❌ Rejected: no payment", 0xED4245)

		require.Len(t, out, 1)
		assert.Equal(t, 0xED4245, out[0].Color)
		require.NotNil(t, out[0].Footer)
		assert.Equal(t, "❌ Rejected: no payment", out[0].Footer.Text)
	})

	t.Run("tolerates a message without embeds", func(t *testing.T) {
		assert.Empty(t, finalizeApprovalEmbeds(nil, "done", 0x57F287))
	})
}

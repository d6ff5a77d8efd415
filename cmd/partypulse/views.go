package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TobiSchelling/PartyPulse/internal/analytics"
	"github.com/TobiSchelling/PartyPulse/internal/output"
)

var selectedParties []string

// selection reads --party; without it every canonical party is selected.
func selection(cmd *cobra.Command) analytics.Selection {
	if !cmd.Flags().Changed("party") {
		return analytics.SelectAll()
	}
	return analytics.Select(selectedParties...)
}

func addPartyFlag(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&selectedParties, "party", nil, "Filter to these parties (repeatable)")
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Print the overview KPIs per party",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := loadEngine(cmd.Context())
		if err != nil {
			return err
		}
		return output.Dashboard(os.Stdout, analytics.Summarize(engine.DashboardData().Parties, selection(cmd)))
	},
}

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List accounts with tweet counts and average likes",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := loadEngine(cmd.Context())
		if err != nil {
			return err
		}
		return output.Accounts(os.Stdout, analytics.FilterAccounts(engine.AccountSummaries(), selection(cmd)))
	},
}

var (
	viralSort string
	viralTop  int
)

var viralCmd = &cobra.Command{
	Use:   "viral",
	Short: "Rank the most viral tweets",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, ok := analytics.ParseSortKey(viralSort)
		if !ok {
			return fmt.Errorf("unknown sort key %q (want likes, retweets, replies or engagement)", viralSort)
		}

		engine, err := loadEngine(cmd.Context())
		if err != nil {
			return err
		}

		top := viralTop
		if !cmd.Flags().Changed("top") {
			top = cfg.Dashboard.ViralTopN
		}
		sel := selection(cmd)
		matching := analytics.FilterTweets(engine.ViralTweets(), sel)
		ranked := analytics.RankTweets(matching, key, sel, top)

		fmt.Printf("Showing top %d of %d tweets\n\n", len(ranked), len(matching))
		return output.Tweets(os.Stdout, ranked)
	},
}

var tweetsCmd = &cobra.Command{
	Use:   "tweets <username>",
	Short: "Show one account's tweets, most recent first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := loadEngine(cmd.Context())
		if err != nil {
			return err
		}
		tweets := engine.TweetsByUsername(args[0])
		if len(tweets) == 0 {
			fmt.Printf("No tweets for @%s\n", args[0])
			return nil
		}
		return output.Tweets(os.Stdout, tweets)
	},
}

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Show topics and narratives per annotated account",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := loadEngine(cmd.Context())
		if err != nil {
			return err
		}
		groups := analytics.TopicsByParty(engine.TopicsAndNarratives(), selection(cmd))
		if len(groups) == 0 {
			fmt.Println("No topic annotations. Run 'partypulse annotate' to create them.")
			return nil
		}
		return output.Topics(os.Stdout, groups)
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare leading topics, narratives and viral tweets across parties",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := loadEngine(cmd.Context())
		if err != nil {
			return err
		}
		return output.Compare(os.Stdout, analytics.FilterComparison(engine.PartyComparisonData(), selection(cmd)))
	},
}

func init() {
	for _, c := range []*cobra.Command{dashboardCmd, accountsCmd, viralCmd, topicsCmd, compareCmd} {
		addPartyFlag(c)
	}
	viralCmd.Flags().StringVar(&viralSort, "sort", "likes", "Sort key: likes, retweets, replies or engagement")
	viralCmd.Flags().IntVar(&viralTop, "top", 10, "Number of tweets to show (default: dashboard.viral_top_n)")
}

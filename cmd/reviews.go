package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var reviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "Read and write service reviews",
}

var reviewsListCmd = &cobra.Command{
	Use:   "list <service-id>",
	Short: "List the reviews of a service",
	Args:  cobra.ExactArgs(1),
	RunE:  runReviewsList,
}

var reviewsAddCmd = &cobra.Command{
	Use:   "add <service-id>",
	Short: "Leave a review on a service you hired",
	Args:  cobra.ExactArgs(1),
	RunE:  runReviewsAdd,
}

func init() {
	reviewsAddCmd.Flags().Int("rating", 0, "rating from 1 to 5")
	reviewsAddCmd.Flags().String("comment", "", "optional comment")
	_ = reviewsAddCmd.MarkFlagRequired("rating")

	reviewsCmd.AddCommand(reviewsListCmd)
	reviewsCmd.AddCommand(reviewsAddCmd)
	rootCmd.AddCommand(reviewsCmd)
}

func runReviewsList(cmd *cobra.Command, args []string) error {
	s, err := getSession()
	if err != nil {
		return err
	}

	reviews, err := s.ServiceReviews(context.Background(), args[0])
	if err != nil {
		printError(err)
		return err
	}

	return render(map[string]interface{}{"reviews": reviews, "count": len(reviews)}, func() {
		if len(reviews) == 0 {
			fmt.Println("Este servicio todavía no tiene reseñas")
			return
		}
		for _, r := range reviews {
			stars := strings.Repeat("★", r.Rating) + strings.Repeat("☆", 5-r.Rating)
			fmt.Printf("%s  %s  %s\n", stars, r.UserName, r.CreatedAt.Format("2006-01-02"))
			if r.Comment != "" {
				fmt.Printf("   %s\n", r.Comment)
			}
		}
	})
}

func runReviewsAdd(cmd *cobra.Command, args []string) error {
	s, err := getSession()
	if err != nil {
		return err
	}

	rating, _ := cmd.Flags().GetInt("rating")
	comment, _ := cmd.Flags().GetString("comment")

	review, err := s.SubmitReview(context.Background(), args[0], rating, comment)
	if err != nil {
		printError(err)
		return err
	}

	if jsonOut || yamlOut {
		return render(review, nil)
	}
	fmt.Printf("%s Reseña publicada (%d/5)\n", colorGreen("✓"), review.Rating)
	return nil
}

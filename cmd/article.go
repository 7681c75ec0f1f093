package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/writespace/writespace/internal/editor"
)

func init() {
	rootCmd.AddCommand(articleCmd)
	articleCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	articleCmd.AddCommand(createArticleCmd())
	articleCmd.AddCommand(getArticleCmd())
	articleCmd.AddCommand(listArticlesCmd())
	articleCmd.AddCommand(publishArticleCmd())
	articleCmd.AddCommand(listRevisionsCmd())
	articleCmd.AddCommand(restoreRevisionCmd())
	articleCmd.AddCommand(deleteArticleCmd())
}

var articleCmd = &cobra.Command{
	Use:   "article",
	Short: "manage articles",
	Example: `  writespace article create -a <author-id> -t <title> -c <content>
  writespace article get -d <article-id>
  writespace article publish -d <article-id>`,
}

func createArticleCmd() *cobra.Command {
	var authorID string
	var title string
	var subtitle string
	var content string
	var language string

	var required = []string{"author-id"}

	command := &cobra.Command{
		Use:     "create",
		Short:   "create an article draft",
		Example: "writespace article create -a <author-id> -t <title> -c <content>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			author, err := uuid.Parse(authorID)
			if err != nil {
				logrus.Error("invalid author id, expected a valid uuid")
				return
			}

			app := buildEnv()

			draft := editor.NewDraft(author)
			draft.SetTitle(title)
			draft.SetSubtitle(subtitle)
			if language != "" {
				draft.Language = language
			}
			if content != "" {
				body, err := editor.ParseHTML(content)
				if err != nil {
					logrus.Error(err)
					return
				}
				draft.SetBody(body)
			}

			id, err := app.docs.SaveDocument(context.Background(), draft)
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("article created with id: %s", id)
		},
	}

	command.Flags().StringVarP(&authorID, "author-id", "a", "", "author id (required)")
	command.Flags().StringVarP(&title, "title", "t", "", "title of the article")
	command.Flags().StringVarP(&subtitle, "subtitle", "s", "", "subtitle of the article")
	command.Flags().StringVarP(&content, "content", "c", "", "body content of the article")
	command.Flags().StringVarP(&language, "language", "l", "", "article language")

	command.Flags().SortFlags = false

	return command
}

func getArticleCmd() *cobra.Command {
	var articleID string

	var required = []string{"article-id"}

	command := &cobra.Command{
		Use:     "get",
		Short:   "get an article",
		Example: "writespace article get -d <article-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			id, err := uuid.Parse(articleID)
			if err != nil {
				logrus.Error("invalid article id, expected a valid uuid")
				return
			}

			app := buildEnv()
			draft, err := app.docs.LoadDocument(context.Background(), id)
			if err != nil {
				logrus.Error(err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Language", "Published", "Words"})
			table.Append([]string{
				draft.ID.String(),
				draft.Language,
				strconv.FormatBool(draft.Published),
				strconv.Itoa(draft.Body.WordCount()),
			})
			table.Render()

			printField("Title", draft.Title)
			printField("Subtitle", draft.Subtitle)
			printField("Content", draft.BodyHTML())
		},
	}

	command.Flags().StringVarP(&articleID, "article-id", "d", "", "article id (required)")
	command.Flags().SortFlags = false

	return command
}

func listArticlesCmd() *cobra.Command {
	var authorID string

	var required = []string{"author-id"}

	command := &cobra.Command{
		Use:   "list",
		Short: "list the articles of an author",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			author, err := uuid.Parse(authorID)
			if err != nil {
				logrus.Error("invalid author id, expected a valid uuid")
				return
			}

			app := buildEnv()
			articles, err := app.docs.ListDocuments(context.Background(), author)
			if err != nil {
				logrus.Error(err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Title", "Revision", "Published"})
			for _, a := range articles {
				table.Append([]string{
					a.ID,
					a.Title,
					strconv.FormatInt(a.Revision, 10),
					strconv.FormatBool(a.Published),
				})
			}
			table.Render()
		},
	}

	command.Flags().StringVarP(&authorID, "author-id", "a", "", "author id (required)")
	command.Flags().SortFlags = false

	return command
}

func publishArticleCmd() *cobra.Command {
	var articleID string

	var required = []string{"article-id"}

	command := &cobra.Command{
		Use:   "publish",
		Short: "publish an article",
		Long: `Publish an article.

The draft must pass the publish-eligibility checks: a minimum body word
count, a category, and a non-placeholder title. An ineligible draft stays
saved as a draft.`,
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			id, err := uuid.Parse(articleID)
			if err != nil {
				logrus.Error("invalid article id, expected a valid uuid")
				return
			}

			app := buildEnv()
			ctx := context.Background()

			draft, err := app.docs.LoadDocument(ctx, id)
			if err != nil {
				logrus.Error(err)
				return
			}

			if err := draft.SetPublished(true); err != nil {
				var pubErr *editor.PublishError
				if errors.As(err, &pubErr) {
					for _, reason := range pubErr.Reasons {
						color.Red("not publishable: %s", reason)
					}
					return
				}
				logrus.Error(err)
				return
			}

			if _, err := app.docs.SaveDocument(ctx, draft); err != nil {
				logrus.Error(err)
				return
			}

			color.Green("article published")
		},
	}

	command.Flags().StringVarP(&articleID, "article-id", "d", "", "article id (required)")
	command.Flags().SortFlags = false

	return command
}

func listRevisionsCmd() *cobra.Command {
	var articleID string

	var required = []string{"article-id"}

	command := &cobra.Command{
		Use:   "revisions",
		Short: "list article revisions",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			id, err := uuid.Parse(articleID)
			if err != nil {
				logrus.Error("invalid article id, expected a valid uuid")
				return
			}

			app := buildEnv()
			revisions, err := app.docs.ListRevisions(context.Background(), id)
			if err != nil {
				logrus.Error(err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Revision", "Title", "Created At"})
			for _, rev := range revisions {
				table.Append([]string{
					strconv.FormatInt(rev.Revision, 10),
					rev.Title,
					rev.CreatedAt.Format("2006-01-02 15:04:05"),
				})
			}
			table.Render()
		},
	}

	command.Flags().StringVarP(&articleID, "article-id", "d", "", "article id (required)")
	command.Flags().SortFlags = false

	return command
}

func restoreRevisionCmd() *cobra.Command {
	var articleID string
	var revision int64

	var required = []string{"article-id", "revision"}

	command := &cobra.Command{
		Use:     "restore",
		Short:   "restore an article revision",
		Example: "writespace article restore -d <article-id> -r <revision>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			id, err := uuid.Parse(articleID)
			if err != nil {
				logrus.Error("invalid article id, expected a valid uuid")
				return
			}

			app := buildEnv()
			if err := app.docs.RestoreRevision(context.Background(), id, revision); err != nil {
				logrus.Error(err)
				return
			}

			color.Green("revision %d restored", revision)
		},
	}

	command.Flags().StringVarP(&articleID, "article-id", "d", "", "article id (required)")
	command.Flags().Int64VarP(&revision, "revision", "r", 0, "revision to restore (required)")
	command.Flags().SortFlags = false

	return command
}

func deleteArticleCmd() *cobra.Command {
	var articleID string
	var erase bool

	var required = []string{"article-id"}

	command := &cobra.Command{
		Use:   "delete",
		Short: "delete an article",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			id, err := uuid.Parse(articleID)
			if err != nil {
				logrus.Error("invalid article id, expected a valid uuid")
				return
			}

			app := buildEnv()
			ctx := context.Background()

			if erase {
				err = app.docs.EraseDocument(ctx, id)
			} else {
				err = app.docs.DeleteDocument(ctx, id)
			}
			if err != nil {
				logrus.Error(err)
				return
			}

			color.Green("article deleted")
		},
	}

	command.Flags().StringVarP(&articleID, "article-id", "d", "", "article id (required)")
	command.Flags().BoolVarP(&erase, "erase", "e", false, "hard delete instead of soft delete")
	command.Flags().SortFlags = false

	return command
}

func printField(label, value string) {
	color.Set(color.FgCyan)
	fmt.Print(label)
	color.Unset()
	fmt.Printf(": %s\n", value)
}

// checkMissingFlags checks if the required flags are set and returns true when some are missing
func checkMissingFlags(cmd *cobra.Command, flags []string) bool {
	var missingFlags []string
	var providedFlags []string
	for _, required := range flags {
		if !cmd.Flag(required).Changed {
			missingFlags = append(missingFlags, required)
		} else {
			value := cmd.Flag(required).Value.String()
			providedFlags = append(providedFlags, fmt.Sprintf("--%s=%s", required, value))
		}
	}

	if len(missingFlags) > 0 {
		var msg string
		for _, f := range missingFlags {
			msg += fmt.Sprintf("--%s ", f)
		}

		color.Red("missing: %s\n", msg)
		if len(providedFlags) > 0 {
			color.Green("provided: %s\n", strings.Join(providedFlags, " "))
		}

		cmd.Println("")
		cmd.Usage()

		return true
	}

	return false
}

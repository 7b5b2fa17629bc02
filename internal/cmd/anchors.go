package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/sitenotes/sitenotes/internal/anchor"
	"github.com/sitenotes/sitenotes/internal/domain"
)

// AnchorsCmd works with comment anchors against saved page snapshots
type AnchorsCmd struct {
	Capture AnchorsCaptureCmd `cmd:"capture" help:"Compute the stored selector for an element of a snapshot"`
	Check   AnchorsCheckCmd   `cmd:"check" help:"Report comments whose anchor no longer resolves" default:"1"`
}

// Anchor states reported by check
const (
	anchorAmbiguous = "ambiguous"
	anchorInvalid   = "invalid"
	anchorMissing   = "missing"
	anchorNone      = "none"
	anchorOK        = "ok"
)

type anchorReport struct {
	CommentID uint
	Matches   int
	Selector  string
	State     string
}

// AnchorsCheckCmd resolves the anchors of one page against an HTML snapshot
type AnchorsCheckCmd struct {
	All      bool   `help:"Also list anchors that resolve"`
	Page     string `help:"Page URL the snapshot was taken from" required:""`
	Snapshot string `arg:"" help:"HTML snapshot of the page" type:"existingfile"`
}

// Run executes the check command
func (a *AnchorsCheckCmd) Run(cli *CLI) error {
	user, err := cli.User()
	if err != nil {
		return err
	}

	doc, err := loadSnapshot(a.Snapshot)
	if err != nil {
		return err
	}
	comments, err := cli.Container.CommentService.ListComments(
		context.Background(), user,
		domain.CommentFilter{PageURL: a.Page},
		domain.CommentSort{Field: domain.SortCreatedAt})
	if err != nil {
		return fmt.Errorf("failed to list comments: %w", err)
	}

	reports := checkAnchors(doc, comments)
	printAnchorReports(os.Stdout, reports, a.All)
	return nil
}

func loadSnapshot(path string) (*anchor.HTMLDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()
	return anchor.ParseHTML(f)
}

// checkAnchors classifies the selector of every comment against doc
func checkAnchors(doc *anchor.HTMLDocument, comments []domain.Comment) []anchorReport {
	reports := make([]anchorReport, 0, len(comments))
	for _, c := range comments {
		r := anchorReport{CommentID: c.ID, Selector: c.ElementSelector}
		if c.ElementSelector == "" {
			r.State = anchorNone
			reports = append(reports, r)
			continue
		}

		n, err := doc.Count(c.ElementSelector)
		r.Matches = n
		switch {
		case err != nil:
			r.State = anchorInvalid
		case n == 0:
			r.State = anchorMissing
		case n > 1:
			r.State = anchorAmbiguous
		default:
			r.State = anchorOK
		}
		reports = append(reports, r)
	}
	return reports
}

func printAnchorReports(out io.Writer, reports []anchorReport, all bool) {
	stale := 0
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATE\tMATCHES\tSELECTOR")
	for _, r := range reports {
		if r.State != anchorOK && r.State != anchorNone {
			stale++
		} else if !all {
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", r.CommentID, r.State, r.Matches, r.Selector)
	}
	w.Flush()

	fmt.Fprintf(out, "\n%d of %d anchors need attention\n", stale, len(reports))
}

// AnchorsCaptureCmd prints the anchor a click on an element would store
type AnchorsCaptureCmd struct {
	Query    string `arg:"" help:"CSS query selecting exactly one element of the snapshot"`
	Snapshot string `arg:"" help:"HTML snapshot of the page" type:"existingfile"`
	X        int    `help:"Document x coordinate of the click" name:"x"`
	Y        int    `help:"Document y coordinate of the click" name:"y"`
}

// Run executes the capture command
func (a *AnchorsCaptureCmd) Run(cli *CLI) error {
	doc, err := loadSnapshot(a.Snapshot)
	if err != nil {
		return err
	}
	el, ok := doc.Resolve(a.Query)
	if !ok {
		return fmt.Errorf("query %q does not match exactly one element", a.Query)
	}

	captured := anchor.Capture(el, a.X, a.Y)
	fmt.Printf("Selector: %s\n", captured.Selector)
	fmt.Printf("Position: %d,%d\n", captured.X, captured.Y)
	return nil
}

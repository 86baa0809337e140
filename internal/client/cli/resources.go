package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/taskboard/internal/client/client"
	"github.com/dmitrijs2005/taskboard/internal/client/models"
)

func (a *App) table(header string, rows func(w *tabwriter.Writer)) {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, header)
	rows(w)
	_ = w.Flush()
}

// Projects lists projects, optionally filtered by status.
func (a *App) Projects(ctx context.Context, args []string) error {
	if err := a.guard(ctx, false); err != nil {
		return err
	}

	var params *client.Params
	if len(args) > 0 {
		params = client.NewParams().Add("status", args[0])
	}
	projects, err := a.api.Projects.GetAll(ctx, params)
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		a.println("No projects.")
		return nil
	}

	a.table("ID\tNAME\tSTATUS\tDEADLINE", func(w *tabwriter.Writer) {
		for _, p := range projects {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Status, p.Deadline)
		}
	})
	return nil
}

// Project shows one project with its members and tasks.
func (a *App) Project(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: usage: project <id>", errUsage)
	}
	if err := a.guard(ctx, false); err != nil {
		return err
	}
	id := models.ID(args[0])

	p, err := a.api.Projects.GetByID(ctx, id)
	if err != nil {
		return err
	}
	a.printf("%s [%s]\n", p.Name, p.Status)
	if p.Description != "" {
		a.println(p.Description)
	}
	if p.Deadline != "" {
		a.println("Deadline:", p.Deadline)
	}

	members, err := a.api.Members.ProjectMembers(ctx, id)
	if err != nil {
		return err
	}
	if len(members) > 0 {
		a.println()
		a.table("MEMBER\tEMAIL\tROLE", func(w *tabwriter.Writer) {
			for _, m := range members {
				fmt.Fprintf(w, "%s\t%s\t%s\n", m.Name, m.Email, m.Role)
			}
		})
	}

	tasks, err := a.api.Tasks.GetByProject(ctx, id)
	if err != nil {
		return err
	}
	a.println()
	a.printTasks(tasks)
	return nil
}

// NewProject creates a project from prompted name, description and deadline.
func (a *App) NewProject(ctx context.Context) error {
	if err := a.guard(ctx, false); err != nil {
		return err
	}

	name, err := getSimpleText(a.reader, "Enter project name", a.out)
	if err != nil {
		return err
	}
	description, err := GetMultiline(a.reader, "Enter description", a.out)
	if err != nil {
		return err
	}
	deadline, err := getSimpleText(a.reader, "Enter deadline (YYYY-MM-DD, optional)", a.out)
	if err != nil {
		return err
	}

	p, err := a.api.Projects.Create(ctx, models.Project{Name: name, Description: description, Deadline: deadline})
	if err != nil {
		return err
	}
	a.printf("Project %s created.\n", p.ID)
	return nil
}

// Tasks lists all tasks, or the tasks of one project.
func (a *App) Tasks(ctx context.Context, args []string) error {
	if err := a.guard(ctx, false); err != nil {
		return err
	}

	var (
		tasks []models.Task
		err   error
	)
	if len(args) > 0 {
		tasks, err = a.api.Tasks.GetByProject(ctx, models.ID(args[0]))
	} else {
		tasks, err = a.api.Tasks.GetAll(ctx)
	}
	if err != nil {
		return err
	}
	a.printTasks(tasks)
	return nil
}

func (a *App) printTasks(tasks []models.Task) {
	if len(tasks) == 0 {
		a.println("No tasks.")
		return
	}
	a.table("ID\tTITLE\tSTATUS\tPRIORITY\tDUE", func(w *tabwriter.Writer) {
		for _, t := range tasks {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Title, t.Status, t.Priority, t.DueDate)
		}
	})
}

func (a *App) Classes(ctx context.Context) error {
	if err := a.guard(ctx, false); err != nil {
		return err
	}
	classes, err := a.api.Classes.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(classes) == 0 {
		a.println("No classes.")
		return nil
	}
	a.table("ID\tNAME\tDESCRIPTION", func(w *tabwriter.Writer) {
		for _, c := range classes {
			fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Name, c.Description)
		}
	})
	return nil
}

// Cohorts is admin only.
func (a *App) Cohorts(ctx context.Context) error {
	if err := a.guard(ctx, true); err != nil {
		return err
	}
	cohorts, err := a.api.Cohorts.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(cohorts) == 0 {
		a.println("No cohorts.")
		return nil
	}
	a.table("ID\tNAME\tCLASS\tYEAR", func(w *tabwriter.Writer) {
		for _, c := range cohorts {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", c.ID, c.Name, c.ClassID, c.Year)
		}
	})
	return nil
}

func (a *App) Invitations(ctx context.Context) error {
	if err := a.guard(ctx, false); err != nil {
		return err
	}
	invitations, err := a.api.Members.Invitations(ctx)
	if err != nil {
		return err
	}
	if len(invitations) == 0 {
		a.println("No pending invitations.")
		return nil
	}
	a.table("PROJECT\tNAME\tINVITED BY\tSTATUS", func(w *tabwriter.Writer) {
		for _, inv := range invitations {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", inv.ProjectID, inv.ProjectName, inv.InvitedBy, inv.Status)
		}
	})
	return nil
}

// Respond accepts or declines the invitation to a project.
func (a *App) Respond(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: usage: respond <project-id> yes|no", errUsage)
	}
	var accept bool
	switch args[1] {
	case "yes", "accept":
		accept = true
	case "no", "decline":
	default:
		return fmt.Errorf("%w: usage: respond <project-id> yes|no", errUsage)
	}
	if err := a.guard(ctx, false); err != nil {
		return err
	}

	resp, err := a.api.Projects.RespondToInvitation(ctx, models.ID(args[0]), accept)
	if err != nil {
		return err
	}
	switch {
	case resp.Message != "":
		a.println(resp.Message)
	case accept:
		a.println("Invitation accepted.")
	default:
		a.println("Invitation declined.")
	}
	return nil
}

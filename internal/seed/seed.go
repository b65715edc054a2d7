package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"task-tracker.com/task-tracker/internal/constants"
	model "task-tracker.com/task-tracker/internal/models"
)

var roles = []string{
	"Frontend Developer",
	"Backend Developer",
	"UI/UX Designer",
	"Project Manager",
}

type Options struct {
	Members int
	Tasks   int
	// Seed makes the generated data reproducible. Zero picks a random seed.
	Seed uint64
	Now  time.Time
}

type Result struct {
	Members int
	Tasks   int
	Logs    int
}

// Run replaces all members, tasks and logs with generated data. Operator
// accounts are kept. Every task gets a history that is consistent with its
// final status, and a share of the open tasks is due soon or overdue so the
// dashboard has something to show.
func Run(ctx context.Context, db *gorm.DB, opts Options) (Result, error) {
	if opts.Members <= 0 {
		return Result{}, fmt.Errorf("seed needs at least one member, got %d", opts.Members)
	}
	if opts.Tasks < 0 {
		return Result{}, fmt.Errorf("task count must not be negative, got %d", opts.Tasks)
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	g := &generator{faker: gofakeit.New(opts.Seed), now: opts.Now.UTC()}

	var res Result
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, m := range []any{&model.TaskLog{}, &model.Task{}, &model.Member{}} {
			if err := all.Delete(m).Error; err != nil {
				return err
			}
		}

		members := g.members(opts.Members)
		if err := tx.Omit(clause.Associations).Create(&members).Error; err != nil {
			return err
		}
		res.Members = len(members)

		for i := 0; i < opts.Tasks; i++ {
			member := members[g.faker.Number(0, len(members)-1)]
			task := g.task(i, member.ID)
			if err := tx.Omit(clause.Associations).Create(task).Error; err != nil {
				return err
			}

			logs := history(task)
			if err := tx.Create(&logs).Error; err != nil {
				return err
			}
			res.Tasks++
			res.Logs += len(logs)
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

type generator struct {
	faker *gofakeit.Faker
	now   time.Time
}

func (g *generator) members(n int) []model.Member {
	seen := make(map[string]bool, n)
	members := make([]model.Member, 0, n)
	for len(members) < n {
		name := g.faker.Name()
		if seen[name] {
			continue
		}
		seen[name] = true

		role := g.faker.RandomString(roles)
		members = append(members, model.Member{Name: name, Role: &role, CreatedAt: g.now})
	}
	return members
}

func (g *generator) task(i int, memberID uint) *model.Task {
	status := constants.TaskStatuses[g.faker.Number(0, len(constants.TaskStatuses)-1)]
	created := g.between(g.days(-30), g.now)

	var start, end *time.Time
	switch {
	case i%7 == 0:
		status = constants.TaskStatuses[g.faker.Number(0, 1)]
		start = g.ptr(g.days(-g.faker.Number(1, 3)))
		end = g.ptr(g.days(g.faker.Number(0, 7)))
	case i%10 == 0:
		start = g.ptr(g.days(-g.faker.Number(10, 15)))
		end = g.ptr(g.days(-g.faker.Number(1, 5)))
		status = constants.StatusInProgress
	case status == constants.StatusInProgress:
		start = g.ptr(g.between(created, g.now))
		end = g.ptr(g.between(g.now, g.days(15)))
	case status == constants.StatusDone:
		start = g.ptr(g.between(created, g.days(-2)))
		end = g.ptr(g.between(*start, g.now))
	}

	if start != nil && start.Before(created) {
		created = start.Add(-time.Duration(g.faker.Number(1, 48)) * time.Hour)
	}

	description := fmt.Sprintf("%s for %s.", g.faker.HackerPhrase(), g.faker.Company())
	return &model.Task{
		Title:       g.faker.HackerPhrase(),
		Description: &description,
		MemberID:    &memberID,
		Status:      status,
		Version:     1,
		CreatedAt:   created,
		StartDate:   start,
		EndDate:     end,
	}
}

func (g *generator) days(n int) time.Time {
	return g.now.AddDate(0, 0, n)
}

// between returns a random instant in [from, to]. A reversed range yields from.
func (g *generator) between(from, to time.Time) time.Time {
	if !to.After(from) {
		return from
	}
	return g.faker.DateRange(from, to).UTC()
}

func (g *generator) ptr(t time.Time) *time.Time {
	return &t
}

// history replays the transitions that lead to the task's status.
func history(task *model.Task) []model.TaskLog {
	notStarted := constants.StatusNotStarted
	inProgress := constants.StatusInProgress

	logs := []model.TaskLog{{
		TaskID:    task.ID,
		NewStatus: notStarted,
		Timestamp: task.CreatedAt,
	}}

	if task.Status == notStarted {
		return logs
	}

	started := task.CreatedAt
	if task.StartDate != nil {
		started = *task.StartDate
	}
	logs = append(logs, model.TaskLog{
		TaskID:    task.ID,
		OldStatus: &notStarted,
		NewStatus: inProgress,
		Timestamp: started,
	})

	if task.Status == constants.StatusDone {
		finished := started
		if task.EndDate != nil {
			finished = *task.EndDate
		}
		logs = append(logs, model.TaskLog{
			TaskID:    task.ID,
			OldStatus: &inProgress,
			NewStatus: constants.StatusDone,
			Timestamp: finished,
		})
	}
	return logs
}

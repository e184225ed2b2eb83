// Package catalog declares the models persisted by the application.
package catalog

import (
	"github.com/hitesh22rana/searchsync/internal/model"
)

// Permission is a named capability that can be granted to roles.
var Permission = &model.Definition{
	Name: "Permission",
	Fields: []model.Field{
		model.String("name", model.NoIndex(), model.Titled("Name")),
		model.String("codename", model.NoIndex(), model.Titled("Codename")),
	},
}

// AbstractRole groups permissions.
var AbstractRole = &model.Definition{
	Name: "AbstractRole",
	Fields: []model.Field{
		model.String("name", model.Titled("Name")),
	},
	Nodes: []model.Node{
		{
			Name:  "Permissions",
			Kind:  model.List,
			Links: []model.Link{{Name: "permission", Model: "Permission", Index: true}},
		},
	},
}

// User is an account of the application.
var User = &model.Definition{
	Name: "User",
	Fields: []model.Field{
		model.String("name", model.Stored(), model.Titled("Full Name")),
		model.String("email", model.Titled("Email")),
		model.Boolean("active", model.Titled("Is Active")),
	},
	Links: []model.Link{
		{Name: "supervisor", Model: "User"},
	},
}

// Role binds a user to an abstract role for a period of time.
var Role = &model.Definition{
	Name: "Role",
	Fields: []model.Field{
		model.String("name", model.Titled("Name")),
		model.Boolean("active", model.NoIndex(), model.Titled("Is Active")),
		model.Date("start", model.NoIndex(), model.Titled("Start Date")),
		model.Date("end", model.NoIndex(), model.Titled("End Date")),
	},
	Links: []model.Link{
		{Name: "usr", Model: "User", Index: true},
		{Name: "teammate", Model: "User"},
		{Name: "abstract_role", Model: "AbstractRole", Index: true},
	},
}

// Employee is the employment record of a user.
var Employee = &model.Definition{
	Name: "Employee",
	Fields: []model.Field{
		model.String("eid", model.Stored(), model.Titled("Employee ID")),
	},
	Links: []model.Link{
		{Name: "usr", Model: "User", Index: true},
	},
}

// TimeTable is a weekly lecture slot.
var TimeTable = &model.Definition{
	Name: "TimeTable",
	Fields: []model.Field{
		model.String("lecture", model.Titled("Lecture")),
		model.Integer("week_day", model.Titled("Week day")),
		model.Integer("hours", model.Titled("Hours")),
	},
}

// Scholar attends lectures listed in its time tables.
var Scholar = &model.Definition{
	Name: "Scholar",
	Fields: []model.Field{
		model.String("name", model.Titled("Name")),
	},
	Nodes: []model.Node{
		{
			Name: "TimeTables",
			Kind: model.List,
			Fields: []model.Field{
				model.Boolean("confirmed", model.Titled("Is confirmed")),
			},
			Links: []model.Link{{Name: "timetable", Model: "TimeTable", Index: true}},
		},
	},
}

// Definitions returns every model of the catalog in dependency order.
func Definitions() []*model.Definition {
	return []*model.Definition{
		Permission,
		AbstractRole,
		User,
		Role,
		Employee,
		TimeTable,
		Scholar,
	}
}

// Register registers the catalog models with r.
func Register(r *model.Registry) error {
	return r.Register(Definitions()...)
}

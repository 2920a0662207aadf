// Package fixture loads a world snapshot from YAML: the directory
// population (persons, teams, accounts, celebrities) and the securable
// objects checks are run against. The CLI and example setups feed on it.
package fixture

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gatehouse-project/gatehouse/internal/directory/memory"
	"github.com/gatehouse-project/gatehouse/internal/entities"
)

// File is the YAML document layout.
type File struct {
	Persons []struct {
		Name        string `yaml:"name"`
		DisplayName string `yaml:"display_name"`
	} `yaml:"persons"`
	Teams []struct {
		Name    string   `yaml:"name"`
		Members []string `yaml:"members"`
	} `yaml:"teams"`
	Accounts []struct {
		Email  string `yaml:"email"`
		Person string `yaml:"person"`
	} `yaml:"accounts"`
	Celebrities map[string]string `yaml:"celebrities"`

	Bugs []struct {
		ID          int      `yaml:"id"`
		Private     bool     `yaml:"private"`
		Owner       string   `yaml:"owner"`
		Subscribers []string `yaml:"subscribers"`
	} `yaml:"bugs"`
	BugAttachments []struct {
		ID  int `yaml:"id"`
		Bug int `yaml:"bug"`
	} `yaml:"bug_attachments"`
	Archives []struct {
		Reference string   `yaml:"reference"`
		Owner     string   `yaml:"owner"`
		Private   bool     `yaml:"private"`
		Enabled   bool     `yaml:"enabled"`
		Uploaders []string `yaml:"uploaders"`
	} `yaml:"archives"`
	ArchivePublications []struct {
		ID      int    `yaml:"id"`
		Archive string `yaml:"archive"`
	} `yaml:"archive_publications"`
	Branches []struct {
		UniqueName  string   `yaml:"unique_name"`
		Owner       string   `yaml:"owner"`
		Private     bool     `yaml:"private"`
		Subscribers []string `yaml:"subscribers"`
	} `yaml:"branches"`
	MergeProposals []struct {
		ID         int    `yaml:"id"`
		Registrant string `yaml:"registrant"`
		Source     string `yaml:"source"`
		Target     string `yaml:"target"`
	} `yaml:"merge_proposals"`
	Products []struct {
		Name   string `yaml:"name"`
		Owner  string `yaml:"owner"`
		Driver string `yaml:"driver"`
		Active bool   `yaml:"active"`
	} `yaml:"products"`
	Distributions []struct {
		Name   string `yaml:"name"`
		Owner  string `yaml:"owner"`
		Driver string `yaml:"driver"`
	} `yaml:"distributions"`
	ProductSeries []struct {
		Name    string `yaml:"name"`
		Product string `yaml:"product"`
		Driver  string `yaml:"driver"`
	} `yaml:"product_series"`
	DistroSeries []struct {
		Name         string `yaml:"name"`
		Distribution string `yaml:"distribution"`
		Driver       string `yaml:"driver"`
	} `yaml:"distro_series"`
	Specifications []struct {
		Name        string   `yaml:"name"`
		Private     bool     `yaml:"private"`
		Owner       string   `yaml:"owner"`
		Target      string   `yaml:"target"` // product or distribution name
		Goal        string   `yaml:"goal"`   // series key, optional
		Subscribers []string `yaml:"subscribers"`
	} `yaml:"specifications"`
	MailingLists []struct {
		Team  string `yaml:"team"`
		Owner string `yaml:"owner"`
	} `yaml:"mailing_lists"`
}

// World is a loaded fixture: a populated directory and the objects
// indexed by their key.
type World struct {
	Directory *memory.Directory
	Objects   map[string]entities.Securable
}

// Object returns the securable registered under key.
func (w *World) Object(key string) (entities.Securable, error) {
	obj, ok := w.Objects[key]
	if !ok {
		return nil, fmt.Errorf("fixture has no object %q", key)
	}
	return obj, nil
}

// Load reads and builds a world from a YAML file.
func Load(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", path, err)
	}
	world, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load fixture %s: %w", path, err)
	}
	return world, nil
}

// Parse builds a world from YAML bytes.
func Parse(data []byte) (*World, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse fixture YAML: %w", err)
	}

	b := &builder{
		dir:     memory.New(),
		objects: make(map[string]entities.Securable),
	}
	if err := b.build(&file); err != nil {
		return nil, err
	}
	return &World{Directory: b.dir, Objects: b.objects}, nil
}

type builder struct {
	dir     *memory.Directory
	objects map[string]entities.Securable
}

func (b *builder) build(file *File) error {
	for _, p := range file.Persons {
		b.dir.AddPerson(&entities.Person{Name: p.Name, DisplayName: p.DisplayName})
	}
	for _, t := range file.Teams {
		b.dir.AddPerson(&entities.Person{Name: t.Name, IsTeam: true})
	}
	// Membership edges after all persons and teams exist, so teams can
	// nest regardless of declaration order.
	for _, t := range file.Teams {
		for _, member := range t.Members {
			if b.dir.Person(member) == nil {
				return fmt.Errorf("team %s: unknown member %q", t.Name, member)
			}
			b.dir.AddMember(t.Name, member)
		}
	}
	for _, a := range file.Accounts {
		if b.dir.Person(a.Person) == nil {
			return fmt.Errorf("account %s: unknown person %q", a.Email, a.Person)
		}
		b.dir.LinkAccount(a.Email, a.Person)
	}
	for celebrity, team := range file.Celebrities {
		if b.dir.Person(team) == nil {
			return fmt.Errorf("celebrity %s: unknown person %q", celebrity, team)
		}
		b.dir.SetCelebrity(celebrity, team)
	}

	if err := b.buildObjects(file); err != nil {
		return err
	}
	return nil
}

func (b *builder) buildObjects(file *File) error {
	for _, def := range file.Bugs {
		owner, err := b.person(def.Owner, "bug owner")
		if err != nil {
			return err
		}
		subscribers, err := b.persons(def.Subscribers, "bug subscriber")
		if err != nil {
			return err
		}
		b.add(&entities.Bug{ID: def.ID, Private: def.Private, Owner: owner, Subscribers: subscribers})
	}
	for _, def := range file.BugAttachments {
		bug, err := b.object(fmt.Sprintf("bug/%d", def.Bug))
		if err != nil {
			return err
		}
		b.add(&entities.BugAttachment{ID: def.ID, Bug: bug.(*entities.Bug)})
	}

	for _, def := range file.Archives {
		owner, err := b.person(def.Owner, "archive owner")
		if err != nil {
			return err
		}
		uploaders, err := b.persons(def.Uploaders, "archive uploader")
		if err != nil {
			return err
		}
		b.add(&entities.Archive{
			Reference: def.Reference,
			Owner:     owner,
			Private:   def.Private,
			Enabled:   def.Enabled,
			Uploaders: uploaders,
		})
	}
	for _, def := range file.ArchivePublications {
		archive, err := b.object("archive/" + def.Archive)
		if err != nil {
			return err
		}
		b.add(&entities.ArchivePublication{ID: def.ID, Archive: archive.(*entities.Archive)})
	}

	for _, def := range file.Branches {
		owner, err := b.person(def.Owner, "branch owner")
		if err != nil {
			return err
		}
		subscribers, err := b.persons(def.Subscribers, "branch subscriber")
		if err != nil {
			return err
		}
		b.add(&entities.Branch{
			UniqueName:  def.UniqueName,
			Owner:       owner,
			Private:     def.Private,
			Subscribers: subscribers,
		})
	}
	for _, def := range file.MergeProposals {
		registrant, err := b.person(def.Registrant, "proposal registrant")
		if err != nil {
			return err
		}
		source, err := b.object("branch/" + def.Source)
		if err != nil {
			return err
		}
		target, err := b.object("branch/" + def.Target)
		if err != nil {
			return err
		}
		b.add(&entities.BranchMergeProposal{
			ID:         def.ID,
			Registrant: registrant,
			Source:     source.(*entities.Branch),
			Target:     target.(*entities.Branch),
		})
	}

	for _, def := range file.Products {
		owner, err := b.person(def.Owner, "product owner")
		if err != nil {
			return err
		}
		driver, err := b.optionalPerson(def.Driver, "product driver")
		if err != nil {
			return err
		}
		b.add(&entities.Product{Name: def.Name, Owner: owner, Driver: driver, Active: def.Active})
	}
	for _, def := range file.Distributions {
		owner, err := b.person(def.Owner, "distribution owner")
		if err != nil {
			return err
		}
		driver, err := b.optionalPerson(def.Driver, "distribution driver")
		if err != nil {
			return err
		}
		b.add(&entities.Distribution{Name: def.Name, Owner: owner, Driver: driver})
	}
	for _, def := range file.ProductSeries {
		product, err := b.object("product/" + def.Product)
		if err != nil {
			return err
		}
		driver, err := b.optionalPerson(def.Driver, "series driver")
		if err != nil {
			return err
		}
		b.add(&entities.ProductSeries{Name: def.Name, Product: product.(*entities.Product), Driver: driver})
	}
	for _, def := range file.DistroSeries {
		distribution, err := b.object("distribution/" + def.Distribution)
		if err != nil {
			return err
		}
		driver, err := b.optionalPerson(def.Driver, "series driver")
		if err != nil {
			return err
		}
		b.add(&entities.DistroSeries{Name: def.Name, Distribution: distribution.(*entities.Distribution), Driver: driver})
	}

	for _, def := range file.Specifications {
		owner, err := b.person(def.Owner, "specification owner")
		if err != nil {
			return err
		}
		subscribers, err := b.persons(def.Subscribers, "specification subscriber")
		if err != nil {
			return err
		}
		target, err := b.specTarget(def.Target)
		if err != nil {
			return fmt.Errorf("specification %s: %w", def.Name, err)
		}
		var goal entities.Securable
		if def.Goal != "" {
			goal, err = b.object(def.Goal)
			if err != nil {
				return fmt.Errorf("specification %s: %w", def.Name, err)
			}
		}
		b.add(&entities.Specification{
			Name:        def.Name,
			Private:     def.Private,
			Owner:       owner,
			Target:      target,
			Goal:        goal,
			Subscribers: subscribers,
		})
	}

	for _, def := range file.MailingLists {
		team, err := b.person(def.Team, "mailing list team")
		if err != nil {
			return err
		}
		owner, err := b.person(def.Owner, "mailing list team owner")
		if err != nil {
			return err
		}
		b.add(&entities.MailingList{Team: team, TeamOwner: owner})
	}

	return nil
}

func (b *builder) add(obj entities.Securable) {
	b.objects[obj.Key()] = obj
}

func (b *builder) object(key string) (entities.Securable, error) {
	obj, ok := b.objects[key]
	if !ok {
		return nil, fmt.Errorf("unknown object %q", key)
	}
	return obj, nil
}

func (b *builder) person(name, role string) (*entities.Person, error) {
	if name == "" {
		return nil, fmt.Errorf("missing %s", role)
	}
	p := b.dir.Person(name)
	if p == nil {
		return nil, fmt.Errorf("unknown %s %q", role, name)
	}
	return p, nil
}

func (b *builder) optionalPerson(name, role string) (*entities.Person, error) {
	if name == "" {
		return nil, nil
	}
	return b.person(name, role)
}

func (b *builder) persons(names []string, role string) ([]*entities.Person, error) {
	result := make([]*entities.Person, 0, len(names))
	for _, name := range names {
		p, err := b.person(name, role)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, nil
}

// specTarget resolves a specification target, which may be a product or
// a distribution name.
func (b *builder) specTarget(name string) (entities.Owned, error) {
	if name == "" {
		return nil, fmt.Errorf("missing target")
	}
	if obj, ok := b.objects["product/"+name]; ok {
		return obj.(*entities.Product), nil
	}
	if obj, ok := b.objects["distribution/"+name]; ok {
		return obj.(*entities.Distribution), nil
	}
	return nil, fmt.Errorf("unknown target %q", name)
}

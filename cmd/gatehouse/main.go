package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/gatehouse-project/gatehouse/internal/entities"
	"github.com/gatehouse-project/gatehouse/internal/fixture"
	"github.com/gatehouse-project/gatehouse/internal/services/authorization"
)

var (
	fixtureFlag string
	personFlag  string
	accountFlag string
)

var rootCmd = &cobra.Command{
	Use:   "gatehouse",
	Short: "Declarative authorization engine",
	Long: `Gatehouse evaluates permission checks against a world snapshot.
Rules are resolved by capability from the built-in registry.`,
}

var checkCmd = &cobra.Command{
	Use:   "check <permission> <object-key>",
	Short: "Evaluate one permission check",
	Long: `Evaluate one permission check against a fixture world.

The caller identity defaults to anonymous; --person and --account select
an authenticated identity. Exits 0 when allowed, 1 when denied.`,
	Args: cobra.ExactArgs(2),
	Run:  runCheck,
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List registered rules",
	Long:  `List every permission/capability pair of the built-in registry.`,
	Run:   runRules,
}

func init() {
	checkCmd.Flags().StringVarP(&fixtureFlag, "fixture", "f", "", "Path to the fixture YAML (required)")
	checkCmd.Flags().StringVarP(&personFlag, "person", "p", "", "Check as this person")
	checkCmd.Flags().StringVarP(&accountFlag, "account", "a", "", "Check as this account email")
	checkCmd.MarkFlagRequired("fixture")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(rulesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Failed to execute command: %v", err)
	}
}

func runCheck(cmd *cobra.Command, args []string) {
	permission, objectKey := args[0], args[1]

	world, err := fixture.Load(fixtureFlag)
	if err != nil {
		log.Fatalf("Failed to load fixture: %v", err)
	}

	obj, err := world.Object(objectKey)
	if err != nil {
		log.Fatalf("Failed to resolve object: %v", err)
	}

	identity, err := resolveIdentity(world)
	if err != nil {
		log.Fatalf("Failed to resolve identity: %v", err)
	}

	registry, err := authorization.DefaultRegistry()
	if err != nil {
		log.Fatalf("Failed to build registry: %v", err)
	}
	checker, err := authorization.NewChecker(registry, world.Directory)
	if err != nil {
		log.Fatalf("Failed to build checker: %v", err)
	}

	allowed, err := checker.CheckPermission(context.Background(), permission, obj, identity)
	if err != nil {
		log.Fatalf("Check failed: %v", err)
	}

	if allowed {
		fmt.Printf("ALLOWED: %s on %s for %s\n", permission, obj.Key(), identity.CacheKey())
		return
	}
	fmt.Printf("DENIED: %s on %s for %s\n", permission, obj.Key(), identity.CacheKey())
	os.Exit(1)
}

// resolveIdentity picks the caller identity from flags: a person, an
// account email, or anonymous.
func resolveIdentity(world *fixture.World) (entities.Identity, error) {
	if personFlag != "" && accountFlag != "" {
		return nil, fmt.Errorf("--person and --account are mutually exclusive")
	}
	if personFlag != "" {
		person := world.Directory.Person(personFlag)
		if person == nil {
			return nil, fmt.Errorf("fixture has no person %q", personFlag)
		}
		return entities.AuthenticatedPerson{Person: person}, nil
	}
	if accountFlag != "" {
		return entities.AccountOnly{Account: &entities.Account{Email: accountFlag}}, nil
	}
	return entities.Unauthenticated{}, nil
}

func runRules(cmd *cobra.Command, args []string) {
	registry, err := authorization.DefaultRegistry()
	if err != nil {
		log.Fatalf("Failed to build registry: %v", err)
	}

	for _, reg := range registry.Registrations() {
		fmt.Printf("%-22s %s\n", reg.Permission, reg.Tag)
	}
}

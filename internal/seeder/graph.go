package seeder

import "fmt"

type DependencyGraph struct {
	tables map[string]*TableInfo
	names  []string
	order  []string
}

func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		tables: make(map[string]*TableInfo),
	}
}

func (g *DependencyGraph) AddTable(table *TableInfo) {
	if _, exists := g.tables[table.Name]; !exists {
		g.names = append(g.names, table.Name)
	}
	g.tables[table.Name] = table
}

// BuildInsertionOrder returns the tables parents-first. Ties keep the order
// in which tables were added.
func (g *DependencyGraph) BuildInsertionOrder() ([]string, error) {
	visited := make(map[string]bool)
	temp := make(map[string]bool)
	var order []string

	var visit func(string) error
	visit = func(tableName string) error {
		if temp[tableName] {
			return fmt.Errorf("circular dependency detected involving table: %s", tableName)
		}
		if visited[tableName] {
			return nil
		}

		table, ok := g.tables[tableName]
		if !ok {
			return fmt.Errorf("unknown table referenced: %s", tableName)
		}

		temp[tableName] = true
		for _, dep := range table.Dependencies {
			if dep != tableName { // self-references
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		temp[tableName] = false
		visited[tableName] = true
		order = append(order, tableName)
		return nil
	}

	for _, tableName := range g.names {
		if err := visit(tableName); err != nil {
			return nil, err
		}
	}

	g.order = order
	return order, nil
}

func (g *DependencyGraph) GetOrder() []string {
	return g.order
}

// DeletionOrder is the insertion order reversed, children first.
func (g *DependencyGraph) DeletionOrder() ([]string, error) {
	order, err := g.BuildInsertionOrder()
	if err != nil {
		return nil, err
	}
	reversed := make([]string, len(order))
	for i, name := range order {
		reversed[len(order)-1-i] = name
	}
	return reversed, nil
}

// CatalogGraph builds the graph of the seeded marketplace tables.
func CatalogGraph() *DependencyGraph {
	g := NewDependencyGraph()
	for i := range Tables {
		g.AddTable(&Tables[i])
	}
	return g
}

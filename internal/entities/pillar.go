package entities

// Product is an upstream project snapshot.
type Product struct {
	Name   string
	Owner  *Person
	Driver *Person // optional release manager
	Active bool
}

// Key implements Securable.
func (p *Product) Key() string { return "product/" + p.Name }

// Capabilities implements Securable.
func (p *Product) Capabilities() []Tag {
	return []Tag{TagProduct, TagPillar, TagHasOwner, TagAny}
}

// ObjectOwner implements Owned.
func (p *Product) ObjectOwner() *Person { return p.Owner }

// ObjectDrivers implements Driven.
func (p *Product) ObjectDrivers() []*Person {
	if p.Driver == nil {
		return nil
	}
	return []*Person{p.Driver}
}

// Attributes implements Attributed.
func (p *Product) Attributes() map[string]interface{} {
	return map[string]interface{}{
		"name":   p.Name,
		"active": p.Active,
	}
}

// Distribution is an OS distribution snapshot.
type Distribution struct {
	Name   string
	Owner  *Person
	Driver *Person
}

// Key implements Securable.
func (d *Distribution) Key() string { return "distribution/" + d.Name }

// Capabilities implements Securable.
func (d *Distribution) Capabilities() []Tag {
	return []Tag{TagDistribution, TagPillar, TagHasOwner, TagAny}
}

// ObjectOwner implements Owned.
func (d *Distribution) ObjectOwner() *Person { return d.Owner }

// ObjectDrivers implements Driven.
func (d *Distribution) ObjectDrivers() []*Person {
	if d.Driver == nil {
		return nil
	}
	return []*Person{d.Driver}
}

// ProductSeries is a release series of a product. Its drivers are the
// series driver plus the product's driver; the product owner is the
// fallback authority.
type ProductSeries struct {
	Name    string
	Product *Product
	Driver  *Person
}

// Key implements Securable.
func (s *ProductSeries) Key() string { return "productseries/" + s.Product.Name + "/" + s.Name }

// Capabilities implements Securable.
func (s *ProductSeries) Capabilities() []Tag {
	return []Tag{TagProductSeries, TagHasDrivers, TagHasOwner, TagAny}
}

// ObjectOwner implements Owned.
func (s *ProductSeries) ObjectOwner() *Person { return s.Product.Owner }

// ObjectDrivers implements Driven.
func (s *ProductSeries) ObjectDrivers() []*Person {
	var drivers []*Person
	if s.Driver != nil {
		drivers = append(drivers, s.Driver)
	}
	if s.Product.Driver != nil {
		drivers = append(drivers, s.Product.Driver)
	}
	return drivers
}

// DistroSeries is a release series of a distribution.
type DistroSeries struct {
	Name         string
	Distribution *Distribution
	Driver       *Person
}

// Key implements Securable.
func (s *DistroSeries) Key() string {
	return "distroseries/" + s.Distribution.Name + "/" + s.Name
}

// Capabilities implements Securable.
func (s *DistroSeries) Capabilities() []Tag {
	return []Tag{TagDistroSeries, TagHasDrivers, TagHasOwner, TagAny}
}

// ObjectOwner implements Owned.
func (s *DistroSeries) ObjectOwner() *Person { return s.Distribution.Owner }

// ObjectDrivers implements Driven.
func (s *DistroSeries) ObjectDrivers() []*Person {
	var drivers []*Person
	if s.Driver != nil {
		drivers = append(drivers, s.Driver)
	}
	if s.Distribution.Driver != nil {
		drivers = append(drivers, s.Distribution.Driver)
	}
	return drivers
}

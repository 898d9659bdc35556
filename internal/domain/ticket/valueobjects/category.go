package valueobjects

import "fmt"

type Category string

const (
	CategoryElectrical Category = "electrical"
	CategoryPlumbing   Category = "plumbing"
	CategoryHVAC       Category = "hvac"
	CategoryEquipment  Category = "equipment"
	CategoryBuilding   Category = "building"
	CategoryOther      Category = "other"
)

var validCategories = map[Category]bool{
	CategoryElectrical: true,
	CategoryPlumbing:   true,
	CategoryHVAC:       true,
	CategoryEquipment:  true,
	CategoryBuilding:   true,
	CategoryOther:      true,
}

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	return validCategories[c]
}

func NewCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return c, nil
}

package radar

import "strings"

// QuadrantMember is one stakeholder placed in a quadrant.
type QuadrantMember struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// Quadrants buckets stakeholders by influence and support for the
// stakeholder impact section.
type Quadrants struct {
	Champions []QuadrantMember `json:"champions"`
	Blockers  []QuadrantMember `json:"blockers"`
	Advocates []QuadrantMember `json:"advocates"`
	Observers []QuadrantMember `json:"observers"`
}

// supportLevel returns the stakeholder's support level, inferring one from
// role and type when the source map has no Support column. Risk and
// compliance roles read as low support, delivery-side types as high.
func supportLevel(s Stakeholder) string {
	if s.Support != "" {
		return strings.ToLower(strings.TrimSpace(s.Support))
	}

	role := strings.ToLower(s.Role)
	name := strings.ToLower(s.Name)
	if strings.Contains(role, "risk") || strings.Contains(role, "compliance") ||
		strings.Contains(name, "renée park") {
		return "low"
	}

	switch strings.ToLower(strings.TrimSpace(s.Type)) {
	case "sponsor", "driver", "deliver", "adopt":
		return "high"
	}
	return "medium"
}

// StakeholderQuadrants maps each stakeholder into the influence×support
// quadrant grid.
func (c *Context) StakeholderQuadrants() Quadrants {
	var q Quadrants
	for _, s := range c.Stakeholders {
		member := QuadrantMember{Name: s.Name, Role: s.Role}
		highInfluence := strings.EqualFold(strings.TrimSpace(s.Influence), "high")

		switch support := supportLevel(s); {
		case highInfluence && support == "high":
			q.Champions = append(q.Champions, member)
		case highInfluence && support == "low":
			q.Blockers = append(q.Blockers, member)
		case support == "high":
			q.Advocates = append(q.Advocates, member)
		default:
			q.Observers = append(q.Observers, member)
		}
	}
	return q
}

package domain

const DefaultSessionTimeoutMin = 30

// Site is a registered property that may receive hits. ID is generated once
// at creation and never changes.
type Site struct {
	ID                string `json:"id" bson:"id"`
	Name              string `json:"name" bson:"name"`
	Domain            string `json:"domain" bson:"domain"`
	CreatedAt         int64  `json:"createdAt" bson:"createdAt"` // epoch ms
	IsActive          bool   `json:"isActive" bson:"isActive"`
	SessionTimeoutMin int    `json:"sessionTimeoutMin" bson:"sessionTimeoutMin"`
}

package models

// Token 不透明持有者令牌记录
// name 为人类可读的唯一标识，secret 是实际出示的凭证
type Token struct {
	Name       string  `gorm:"type:text;primaryKey" json:"name"`
	Expiration int64   `gorm:"not null" json:"expiration"`
	Secret     string  `gorm:"type:text;uniqueIndex;not null" json:"secret,omitempty"`
	Rights     []Right `gorm:"foreignKey:Name;references:Name;constraint:OnDelete:CASCADE,OnUpdate:RESTRICT" json:"rights"`
}

// TableName 指定表名
func (Token) TableName() string {
	return "tokens"
}

// Right 令牌的单条权限记录
// (name, right) 联合主键，name 级联引用 tokens.name
type Right struct {
	Name  string `gorm:"type:text;primaryKey" json:"name"`
	Right string `gorm:"type:text;primaryKey;column:right" json:"right"`
}

// TableName 指定表名
func (Right) TableName() string {
	return "rights"
}

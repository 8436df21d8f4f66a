package models

// ChatRoom is one conversation between two participants about a single
// maintenance request.
type ChatRoom struct {
	Base
	MaintenanceID string `gorm:"size:36;not null;index:idx_chat_pair" json:"maintenanceId"`
	User1ID       string `gorm:"size:36;not null;index:idx_chat_pair" json:"user1Id"`
	User2ID       string `gorm:"size:36;not null;index:idx_chat_pair" json:"user2Id"`

	Messages []Message `gorm:"foreignKey:ChatRoomID" json:"messages,omitempty"`
}

type Message struct {
	Base
	ChatRoomID string `gorm:"size:36;not null;index" json:"chatRoomId"`
	SenderID   string `gorm:"size:36;not null" json:"senderId"`
	ReceiverID string `gorm:"size:36;not null" json:"receiverId"`
	Content    string `gorm:"type:text;not null" json:"content"`
	ChatType   string `gorm:"size:20;not null" json:"chatType"`
}

package members

// Member is one row of the Members table. Ids are assigned sequentially
// starting at 201; contact is a 10-digit phone number stored as text.
type Member struct {
	MemberID int64
	Name     string
	Contact  string
}

// FirstMemberID is assigned when the Members table is empty.
const FirstMemberID = 201

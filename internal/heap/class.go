package heap

import "lifetrack/internal/tracker"

// Built-in class names. GameModeBase is the conventional always-tracked
// root type.
const (
	ClassObject           = "Object"
	ClassActor            = "Actor"
	ClassInfo             = "Info"
	ClassGameModeBase     = "GameModeBase"
	ClassGameMode         = "GameMode"
	ClassPawn             = "Pawn"
	ClassCharacter        = "Character"
	ClassController       = "Controller"
	ClassPlayerController = "PlayerController"
)

var builtinClasses = []struct{ name, parent string }{
	{ClassObject, ""},
	{ClassActor, ClassObject},
	{ClassInfo, ClassActor},
	{ClassGameModeBase, ClassInfo},
	{ClassGameMode, ClassGameModeBase},
	{ClassPawn, ClassActor},
	{ClassCharacter, ClassPawn},
	{ClassController, ClassActor},
	{ClassPlayerController, ClassController},
}

// Class is a node in the single-inheritance type tree. Classes are
// immutable once defined.
type Class struct {
	ID     tracker.TypeID
	Name   string
	Parent *Class
}

// IsChildOf reports whether c is t or derives from it.
func (c *Class) IsChildOf(t tracker.TypeID) bool {
	for cur := c; cur != nil; cur = cur.Parent {
		if cur.ID == t {
			return true
		}
	}
	return false
}

func (c *Class) String() string { return c.Name }

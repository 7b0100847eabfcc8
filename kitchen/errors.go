/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package kitchen

import "errors"

// Lobby errors are reported to the caller with an error_message event,
// action errors with action_fail. The text is shown to players as-is.
var (
	ErrRoomNotFound                = errors.New("Room not found!")
	ErrGameAlreadyStarted          = errors.New("The game in this room has already started!")
	ErrRoomFull                    = errors.New("This room is full!")
	ErrNoPlate                     = errors.New("You don't have a plate!")
	ErrInvalidRecipeMatch          = errors.New("That's not the right recipe! Try again.")
	ErrAbilityUnavailable          = errors.New("You can't use an ability right now.")
	ErrAbilityBusy                 = errors.New("Your station is still busy.")
	ErrInvalidIngredientForAbility = errors.New("That ingredient doesn't work with your ability.")
	ErrPlateFull                   = errors.New("Your plate is full!")
	ErrCannotPassPlate             = errors.New("Plates can't be passed!")

	ErrUnknownItem = errors.New("unknown item type")
)

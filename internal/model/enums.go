package model

import "slices"

const DefaultBackground = "Blue"

var BoardBackgrounds = []string{"Blue", "Green", "Orange", "Red", "Purple", "Pink", "Lime", "Sky", "Grey"}

var LabelColors = []string{"Green", "Yellow", "Orange", "Red", "Purple", "Blue", "Sky", "Lime", "Pink", "Black"}

const PriorityNone = "None"

var CardPriorities = []string{PriorityNone, "Low", "Medium", "High", "Urgent"}

const DefaultTheme = "System"

var UserThemes = []string{"Light", "Dark", DefaultTheme}

var MemberRoles = []string{RoleMember, RoleAdmin}

func IsBoardBackground(v string) bool { return slices.Contains(BoardBackgrounds, v) }

func IsLabelColor(v string) bool { return slices.Contains(LabelColors, v) }

func IsCardPriority(v string) bool { return slices.Contains(CardPriorities, v) }

func IsUserTheme(v string) bool { return slices.Contains(UserThemes, v) }

func IsMemberRole(v string) bool { return slices.Contains(MemberRoles, v) }

package diag

// Code enumerates diagnostic kinds (spec.md §7, non-exhaustive list
// promoted to a closed Go enum since this repo needs to switch on it).
type Code string

const (
	UnknownChar          Code = "UNKNOWN_CHAR"
	IntTooLarge          Code = "INT_TOO_LARGE"
	ExpectedToken        Code = "EXPECTED_TOKEN"
	ExpectedIdentifier   Code = "EXPECTED_IDENTIFIER"
	ExpectedStmt         Code = "EXPECTED_STMT"
	ExpectedFactor       Code = "EXPECTED_FACTOR"
	VariableRedeclaration Code = "VARIABLE_REDECLARATION"
	UndeclaredVariable   Code = "UNDECLARED_VARIABLE"
	UseBeforeDeclaration Code = "USE_OF_VARIABLE_BEFORE_DECLARATION"
	CannotAssign         Code = "CANNOT_ASSIGN"
	OpCannotApplyTo      Code = "OP_CANNOT_APPLY_TO"
	ExpectedBoolCond     Code = "EXPECTED_BOOL_COND"
	ReturnValueIncompatible Code = "RETURN_VALUE_NOT_COMPATIBLE_WITH_RETURN_TYPE"
	FunctionExpectsReturnValue Code = "FUNCTION_EXPECTS_RETURN_VALUE"
	FunctionExpectsReturn Code = "FUNCTION_EXPECTS_RETURN"
	StmtsAfterReturn     Code = "STMTS_AFTER_RETURN"
	CouldNotFindFunction Code = "COULD_NOT_FIND_FUNCTION"
	CouldNotFindConstructor Code = "COULD_NOT_FIND_CONSTRUCTOR"
	CouldNotFindModuleType Code = "COULD_NOT_FIND_MODULE_TYPE"
	AccessingFieldFromStaticContext Code = "ACCESSING_FIELD_FROM_STATIC_CONTEXT"
	CalledNonStaticFuncFromStatic Code = "CALLED_NON_STATIC_FUNC_FROM_STATIC"
	FieldNotVisible      Code = "FIELD_NOT_VISIBLE"
	FunctionNotVisible   Code = "FUNCTION_NOT_VISIBLE"
	CircularFields       Code = "CIRCULAR_FIELDS"
	TypeDoesNotHaveField Code = "TYPE_DOES_NOT_HAVE_FIELD"
	ThisKeywordExpectsDotOp Code = "THIS_KEYWORD_EXPECTS_DOT_OP"
	CannotUseThisInStaticContext Code = "CANNOT_USE_THIS_KEYWORD_IN_STATIC_CONTEXT"
	ArrTooManyInitValues Code = "ARR_TOO_MANY_INIT_VALUES"
	ArrayAccessExpectsInt Code = "ARRAY_ACCESS_EXPECTS_INT"
	ArrayAccessOnInvalidType Code = "ARRAY_ACCESS_ON_INVALID_TYPE"
	TooManyArrayAccessIndexes Code = "TOO_MANY_ARRAY_ACCESS_INDEXES"
	ElementNotCompatibleWithArray Code = "ELEMENT_OF_ARRAY_NOT_COMPATIBLE_WITH_ARRAY"
	MultipleMainFunctions Code = "MULTIPLE_MAIN_FUNCTIONS_IN_PROGRAM"
	MainFunctionNotFound Code = "MAIN_FUNCTION_NOT_FOUND"
	FailedToReadFile     Code = "FAILED_TO_READ_FILE"
	FailedToReadSourceDirectory Code = "FAILED_TO_READ_SOURCE_DIRECTORY"
	ConflictingInternalPaths Code = "CONFLICTING_INTERNAL_PATHS"
	FileWithMainFunctionDoesNotExist Code = "FILE_WITH_MAIN_FUNCTION_DOES_NOT_EXIST"
)

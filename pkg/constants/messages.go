package constants

// RootLabel is how the root node is shown in breadcrumbs and trees
const RootLabel = "{root}"

// ConnectedMessage is the prefix of the connect endpoint's reply
const ConnectedMessage = "Successfully connected to ZooKeeper at "

// PathNotFoundMessage is the prefix of the browse endpoint's 404 body
const PathNotFoundMessage = "Path not found in ZooKeeper: "
